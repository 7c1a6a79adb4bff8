package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// AuditLogUseCase consulta de la bitácora (solo admin).
type AuditLogUseCase struct {
	repo repository.AuditLogRepository
}

func NewAuditLogUseCase(repo repository.AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{repo: repo}
}

// List entradas más recientes primero.
func (uc *AuditLogUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.AuditLogResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Username:  l.Username,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}
