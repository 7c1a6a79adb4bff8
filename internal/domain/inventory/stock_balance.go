package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// PriceScale decimales que admiten precio unitario y total (columnas NUMERIC(14,2) y NUMERIC(18,2)).
const PriceScale = 2

var (
	maxUnitPrice    = decimal.New(1, 12)
	maxReceiptTotal = decimal.New(1, 16)
)

// ValidReceiptAmount indica si precio y total se pueden guardar sin redondeo ni desbordamiento:
// precio >= 0, como máximo PriceScale decimales y ambos dentro del rango de su columna.
func ValidReceiptAmount(quantity int64, unitPrice decimal.Decimal) bool {
	if unitPrice.IsNegative() || !unitPrice.Equal(unitPrice.Truncate(PriceScale)) {
		return false
	}
	if unitPrice.GreaterThanOrEqual(maxUnitPrice) {
		return false
	}
	return ReceiptTotal(quantity, unitPrice).LessThan(maxReceiptTotal)
}

// ReceiptTotal calcula el total de un ingreso: Cantidad * PrecioUnitario.
func ReceiptTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice)
}

// DerivedStock recalcula el saldo a partir del historial:
// StockDerivado = StockInicial + ΣIngresos - ΣSalidas
func DerivedStock(initial, totalReceipts, totalIssues int64) int64 {
	return initial + totalReceipts - totalIssues
}

// Reconcile arma la conciliación de un producto con los totales del historial.
func Reconcile(p *entity.Product, totalReceipts, totalIssues int64) entity.StockReconciliation {
	derived := DerivedStock(p.InitialStock, totalReceipts, totalIssues)
	return entity.StockReconciliation{
		ProductID:     p.ID,
		ProductName:   p.Name,
		CategoryName:  p.CategoryName,
		Brand:         p.Brand,
		PrinterModel:  p.PrinterModel,
		Color:         p.Color,
		Unit:          p.Unit,
		Active:        p.Active,
		InitialStock:  p.InitialStock,
		TotalReceipts: totalReceipts,
		TotalIssues:   totalIssues,
		DerivedStock:  derived,
		LedgerBalance: p.Stock,
		Discrepancy:   p.Stock - derived,
	}
}

// ReceiptDelta devuelve el ajuste de stock al editar un ingreso (nueva - anterior).
func ReceiptDelta(oldQty, newQty int64) int64 {
	return newQty - oldQty
}

// IssueDelta devuelve el ajuste de stock al editar una salida. Es el inverso del ingreso:
// aumentar una salida resta stock.
func IssueDelta(oldQty, newQty int64) int64 {
	return oldQty - newQty
}

// CanApply indica si aplicar delta sobre stock deja un saldo no negativo.
func CanApply(stock, delta int64) bool {
	return stock+delta >= 0
}
