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

var _ repository.IssueRepository = (*IssueRepo)(nil)

const issueSelect = `
		SELECT i.id, i.product_id, p.name, i.quantity, i.occurred_on, i.destination,
		       i.responsible, i.notes, i.created_at, COALESCE(i.created_by::text, ''), i.updated_at
		FROM issues i
		JOIN products p ON p.id = i.product_id`

// IssueRepo salidas sobre PostgreSQL (usable con pool o tx).
type IssueRepo struct {
	q Querier
}

func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

func scanIssue(row rowScanner) (*entity.Issue, error) {
	var is entity.Issue
	err := row.Scan(&is.ID, &is.ProductID, &is.ProductName, &is.Quantity, &is.OccurredOn, &is.Destination,
		&is.Responsible, &is.Notes, &is.CreatedAt, &is.CreatedBy, &is.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &is, nil
}

func (r *IssueRepo) Create(ctx context.Context, is *entity.Issue) error {
	query := `
		INSERT INTO issues (id, product_id, quantity, occurred_on, destination, responsible, notes,
		                    created_at, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		is.ID, is.ProductID, is.Quantity, is.OccurredOn, is.Destination, is.Responsible, is.Notes,
		is.CreatedAt, nullable(is.CreatedBy), is.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return mapStoreError(fmt.Errorf("insert issue: %w", err))
	}
	return nil
}

func (r *IssueRepo) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	return r.get(ctx, issueSelect+` WHERE i.id = $1`, id)
}

func (r *IssueRepo) GetForUpdate(ctx context.Context, id string) (*entity.Issue, error) {
	return r.get(ctx, issueSelect+` WHERE i.id = $1 FOR UPDATE OF i`, id)
}

func (r *IssueRepo) get(ctx context.Context, query, id string) (*entity.Issue, error) {
	is, err := scanIssue(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get issue: %w", err))
	}
	return is, nil
}

func (r *IssueRepo) Update(ctx context.Context, is *entity.Issue) error {
	query := `
		UPDATE issues SET quantity = $2, occurred_on = $3, destination = $4, responsible = $5, notes = $6,
		       updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		is.ID, is.Quantity, is.OccurredOn, is.Destination, is.Responsible, is.Notes, is.UpdatedAt)
	if err != nil {
		return mapStoreError(fmt.Errorf("update issue: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IssueRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(fmt.Errorf("delete issue: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IssueRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Issue, error) {
	w := movementWhere("i", f)
	query := issueSelect + w.sql() + ` ORDER BY i.occurred_on DESC, i.created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("list issues: %w", err))
	}
	defer rows.Close()
	var list []*entity.Issue
	for rows.Next() {
		is, err := scanIssue(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("scan issue: %w", err))
		}
		list = append(list, is)
	}
	return list, rows.Err()
}
