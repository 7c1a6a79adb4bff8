package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora (tabla logs). Se escribe dentro de la tx del Ledger.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	query := `
		INSERT INTO logs (id, user_id, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, nullable(l.UserID), l.Action, l.Entity, l.EntityID, l.Detail, l.CreatedAt)
	if err != nil {
		return mapStoreError(fmt.Errorf("insert log: %w", err))
	}
	return nil
}

// List devuelve la bitácora del más reciente al más antiguo con el username del autor.
func (r *AuditLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT l.id, COALESCE(l.user_id::text, ''), COALESCE(u.username, ''), l.action, l.entity, l.entity_id,
		       l.detail, l.created_at
		FROM logs l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("list logs: %w", err))
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &l.Action, &l.Entity, &l.EntityID, &l.Detail, &l.CreatedAt); err != nil {
			return nil, mapStoreError(fmt.Errorf("scan log: %w", err))
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
