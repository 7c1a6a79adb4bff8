package repository

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// AuditLogRepository bitácora de mutaciones del inventario.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, error)
}
