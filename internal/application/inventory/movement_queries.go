package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// MovementQueries consultas de solo lectura sobre ingresos y salidas (fuera de transacción).
type MovementQueries struct {
	receiptRepo repository.ReceiptRepository
	issueRepo   repository.IssueRepository
}

// NewMovementQueries construye el caso de uso de consultas.
func NewMovementQueries(receiptRepo repository.ReceiptRepository, issueRepo repository.IssueRepository) *MovementQueries {
	return &MovementQueries{receiptRepo: receiptRepo, issueRepo: issueRepo}
}

// GetReceipt obtiene un ingreso por ID.
func (q *MovementQueries) GetReceipt(ctx context.Context, id string) (*entity.Receipt, error) {
	r, err := q.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListReceipts lista ingresos por producto y rango de fechas.
func (q *MovementQueries) ListReceipts(ctx context.Context, filter repository.MovementFilter) ([]*entity.Receipt, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.ErrInvalidInput
	}
	return q.receiptRepo.List(ctx, filter)
}

// GetIssue obtiene una salida por ID.
func (q *MovementQueries) GetIssue(ctx context.Context, id string) (*entity.Issue, error) {
	i, err := q.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	return i, nil
}

// ListIssues lista salidas por producto y rango de fechas.
func (q *MovementQueries) ListIssues(ctx context.Context, filter repository.MovementFilter) ([]*entity.Issue, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.ErrInvalidInput
	}
	return q.issueRepo.List(ctx, filter)
}
