package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptSelect = `
		SELECT r.id, r.product_id, p.name, r.quantity, r.unit_price, r.total, r.occurred_on,
		       r.responsible, r.notes, r.created_at, COALESCE(r.created_by::text, ''), r.updated_at
		FROM receipts r
		JOIN products p ON p.id = r.product_id`

// ReceiptRepo ingresos sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de ingresos. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

func scanReceipt(row rowScanner) (*entity.Receipt, error) {
	var rc entity.Receipt
	err := row.Scan(&rc.ID, &rc.ProductID, &rc.ProductName, &rc.Quantity, &rc.UnitPrice, &rc.Total, &rc.OccurredOn,
		&rc.Responsible, &rc.Notes, &rc.CreatedAt, &rc.CreatedBy, &rc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// Create persiste el ingreso. El ajuste de stock lo hace el Ledger en la misma tx.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, product_id, quantity, unit_price, total, occurred_on, responsible, notes,
		                      created_at, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.ProductID, rc.Quantity, rc.UnitPrice, rc.Total, rc.OccurredOn, rc.Responsible, rc.Notes,
		rc.CreatedAt, nullable(rc.CreatedBy), rc.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return mapStoreError(fmt.Errorf("insert receipt: %w", err))
	}
	return nil
}

func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, receiptSelect+` WHERE r.id = $1`, id)
}

// GetForUpdate bloquea la fila del ingreso (se bloquea antes que el producto en todas las operaciones).
func (r *ReceiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, receiptSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

func (r *ReceiptRepo) get(ctx context.Context, query, id string) (*entity.Receipt, error) {
	rc, err := scanReceipt(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get receipt: %w", err))
	}
	return rc, nil
}

// Update modifica cantidad, precio, total, fecha y datos libres. El producto no cambia.
func (r *ReceiptRepo) Update(ctx context.Context, rc *entity.Receipt) error {
	query := `
		UPDATE receipts SET quantity = $2, unit_price = $3, total = $4, occurred_on = $5,
		       responsible = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rc.ID, rc.Quantity, rc.UnitPrice, rc.Total, rc.OccurredOn, rc.Responsible, rc.Notes, rc.UpdatedAt)
	if err != nil {
		return mapStoreError(fmt.Errorf("update receipt: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReceiptRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(fmt.Errorf("delete receipt: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ingresos del más reciente al más antiguo, filtrando por producto y rango de fechas (inclusive).
func (r *ReceiptRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Receipt, error) {
	w := movementWhere("r", f)
	query := receiptSelect + w.sql() + ` ORDER BY r.occurred_on DESC, r.created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("list receipts: %w", err))
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("scan receipt: %w", err))
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

func movementWhere(alias string, f repository.MovementFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ProductID != "" {
		w.add(alias+".product_id = $%d", f.ProductID)
	}
	if f.From != nil {
		w.add(alias+".occurred_on >= $%d", *f.From)
	}
	if f.To != nil {
		w.add(alias+".occurred_on <= $%d", *f.To)
	}
	return w
}
