package inventory

import (
	"context"
	"math"
	"sort"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// idealStockFactor stock ideal = StockMinimo * 1.5
const idealStockFactor = 1.5

// ReplenishmentUseCase genera la lista de alertas de stock con la cantidad sugerida de reposición.
type ReplenishmentUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reportRepo repository.ReportRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reportRepo: reportRepo}
}

// GenerateAlertList devuelve los productos activos con stock <= stock mínimo, ordenados por urgencia:
// primero los agotados, luego mayor déficit relativo al mínimo.
func (uc *ReplenishmentUseCase) GenerateAlertList(ctx context.Context) ([]dto.StockAlertDTO, error) {
	products, err := uc.reportRepo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertDTO, 0, len(products))
	for _, p := range products {
		ideal := int64(math.Ceil(float64(p.StockMinimum) * idealStockFactor))
		suggested := ideal - p.Stock
		if suggested < 0 {
			suggested = 0
		}
		alerts = append(alerts, dto.StockAlertDTO{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CategoryName: p.CategoryName,
			Brand:        p.Brand,
			PrinterModel: p.PrinterModel,
			Color:        p.Color,
			Unit:         p.Unit,
			CurrentStock: p.Stock,
			StockMinimum: p.StockMinimum,
			IdealStock:   ideal,
			SuggestedQty: suggested,
			OutOfStock:   p.Stock == 0,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.OutOfStock != b.OutOfStock {
			return a.OutOfStock
		}
		return deficitRatio(a) > deficitRatio(b)
	})

	// Prioridad 1 = más urgente
	for i := range alerts {
		alerts[i].Priority = i + 1
	}
	return alerts, nil
}

func deficitRatio(a dto.StockAlertDTO) float64 {
	if a.StockMinimum <= 0 {
		return 0
	}
	return float64(a.StockMinimum-a.CurrentStock) / float64(a.StockMinimum)
}
