package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// MovementFilter filtros comunes para listar ingresos y salidas.
type MovementFilter struct {
	ProductID string
	From, To  *time.Time
	Limit     int // 0 = sin límite (exportaciones)
	Offset    int
}

// ReceiptRepository define el puerto de persistencia para ingresos.
// GetByID y GetForUpdate devuelven (nil, nil) si el ingreso no existe.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Receipt, error)
}

// IssueRepository define el puerto de persistencia para salidas.
type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id string) (*entity.Issue, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Issue, error)
	Update(ctx context.Context, issue *entity.Issue) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Issue, error)
}
