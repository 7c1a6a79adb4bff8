package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Receipts   repository.ReceiptRepository
	Issues     repository.IssueRepository
	Logs       repository.AuditLogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el Ledger: si fn devuelve error se hace Rollback y no queda ningún efecto visible.
// Los fallos de serialización se devuelven como domain.ErrConflict y los de conexión como domain.ErrStoreUnavailable.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
