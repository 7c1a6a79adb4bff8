package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// reconcileSelect stock actual y totales del historial en una sola sentencia (una única foto de lectura).
const reconcileSelect = `
	SELECT
	    p.id, p.name, c.name, p.brand, p.printer_model, p.color, p.unit, p.active,
	    p.initial_stock, p.stock,
	    COALESCE((SELECT SUM(r.quantity) FROM receipts r WHERE r.product_id = p.id), 0)::BIGINT AS total_receipts,
	    COALESCE((SELECT SUM(i.quantity) FROM issues   i WHERE i.product_id = p.id), 0)::BIGINT AS total_issues
	FROM products p
	JOIN categories c ON c.id = p.category_id`

// ReportRepo consultas de solo lectura para conciliación, alertas y dashboard (read committed, sobre el pool).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func scanReconciliation(row rowScanner) (entity.StockReconciliation, error) {
	var (
		p             entity.Product
		receipts, out int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.CategoryName, &p.Brand, &p.PrinterModel, &p.Color, &p.Unit, &p.Active,
		&p.InitialStock, &p.Stock, &receipts, &out); err != nil {
		return entity.StockReconciliation{}, err
	}
	return inventory.Reconcile(&p, receipts, out), nil
}

// Reconcile concilia un producto. (nil, nil) si no existe.
func (r *ReportRepo) Reconcile(ctx context.Context, productID string) (*entity.StockReconciliation, error) {
	rec, err := scanReconciliation(r.pool.QueryRow(ctx, reconcileSelect+` WHERE p.id = $1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("report.Reconcile: %w", err))
	}
	return &rec, nil
}

// ReconcileAll concilia todos los productos, ordenados por categoría y nombre.
func (r *ReportRepo) ReconcileAll(ctx context.Context) ([]entity.StockReconciliation, error) {
	rows, err := r.pool.Query(ctx, reconcileSelect+` ORDER BY c.name, p.name`)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("report.ReconcileAll: %w", err))
	}
	defer rows.Close()
	var list []entity.StockReconciliation
	for rows.Next() {
		rec, err := scanReconciliation(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("report.ReconcileAll scan: %w", err))
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ListAlerts productos activos con stock <= stock mínimo.
func (r *ReportRepo) ListAlerts(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+`
		WHERE p.active AND p.stock <= p.stock_minimum
		ORDER BY p.stock, p.name`)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("report.ListAlerts: %w", err))
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("report.ListAlerts scan: %w", err))
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetStockSummary contadores del catálogo en una sola pasada.
func (r *ReportRepo) GetStockSummary(ctx context.Context) (repository.StockSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                          AS total,
	    COUNT(*) FILTER (WHERE active)                    AS active,
	    COUNT(*) FILTER (WHERE NOT active)                AS inactive,
	    COUNT(*) FILTER (WHERE stock <= stock_minimum)    AS low_stock,
	    COUNT(*) FILTER (WHERE stock = 0)                 AS out_of_stock,
	    COALESCE(SUM(stock), 0)::BIGINT                   AS total_stock
	FROM products`
	var s repository.StockSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.ActiveProducts, &s.InactiveProducts,
		&s.LowStockProducts, &s.OutOfStockProducts, &s.TotalStock,
	)
	if err != nil {
		return repository.StockSummary{}, mapStoreError(fmt.Errorf("report.GetStockSummary: %w", err))
	}
	return s, nil
}

// GetLastReceiptDate fecha del último ingreso; nil si no hay ingresos.
func (r *ReportRepo) GetLastReceiptDate(ctx context.Context) (*time.Time, error) {
	var last *time.Time
	if err := r.pool.QueryRow(ctx, `SELECT MAX(occurred_on) FROM receipts`).Scan(&last); err != nil {
		return nil, mapStoreError(fmt.Errorf("report.GetLastReceiptDate: %w", err))
	}
	return last, nil
}

// GetTopIssued los `limit` productos con más unidades entregadas.
func (r *ReportRepo) GetTopIssued(ctx context.Context, limit int) ([]repository.TopIssuedResult, error) {
	const query = `
	SELECT p.id, p.name, SUM(i.quantity)::BIGINT AS total_issued
	FROM issues i
	JOIN products p ON p.id = i.product_id
	GROUP BY p.id, p.name
	ORDER BY total_issued DESC, p.name
	LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("report.GetTopIssued: %w", err))
	}
	defer rows.Close()
	var results []repository.TopIssuedResult
	for rows.Next() {
		var row repository.TopIssuedResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalIssued); err != nil {
			return nil, mapStoreError(fmt.Errorf("report.GetTopIssued scan: %w", err))
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
