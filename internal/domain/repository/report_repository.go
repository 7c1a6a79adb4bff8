package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// StockSummary contadores agregados del catálogo para KPIs y dashboard.
type StockSummary struct {
	TotalProducts      int64
	ActiveProducts     int64
	InactiveProducts   int64
	LowStockProducts   int64 // stock <= stock_minimum
	OutOfStockProducts int64 // stock = 0
	TotalStock         int64
}

// TopIssuedResult producto con mayor cantidad entregada por salidas.
type TopIssuedResult struct {
	ProductID   string
	ProductName string
	TotalIssued int64
}

// ReportRepository consultas de solo lectura (read committed) para conciliación y reportes.
type ReportRepository interface {
	// Reconcile calcula la conciliación de un producto en una sola sentencia. (nil, nil) si no existe.
	Reconcile(ctx context.Context, productID string) (*entity.StockReconciliation, error)
	ReconcileAll(ctx context.Context) ([]entity.StockReconciliation, error)
	ListAlerts(ctx context.Context) ([]*entity.Product, error)
	GetStockSummary(ctx context.Context) (StockSummary, error)
	GetLastReceiptDate(ctx context.Context) (*time.Time, error)
	GetTopIssued(ctx context.Context, limit int) ([]TopIssuedResult, error)
}
