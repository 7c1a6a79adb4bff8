package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner construye el runner con el pool y el nivel de aislamiento configurado
// (serializable, repeatable_read o read_committed).
func NewTxRunner(pool *pgxpool.Pool, isolation string) (*TxRunner, error) {
	level, err := ParseIsolation(isolation)
	if err != nil {
		return nil, err
	}
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: level}}, nil
}

// ParseIsolation traduce el valor de DB_TX_ISOLATION.
func ParseIsolation(s string) (pgx.TxIsoLevel, error) {
	switch s {
	case "", "serializable":
		return pgx.Serializable, nil
	case "repeatable_read":
		return pgx.RepeatableRead, nil
	case "read_committed":
		return pgx.ReadCommitted, nil
	}
	return "", fmt.Errorf("nivel de aislamiento desconocido: %q", s)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los fallos de serialización (también en el COMMIT) salen como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, r.opts)
	if err != nil {
		return mapStoreError(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Products:   NewProductRepository(tx),
		Categories: NewCategoryRepository(tx),
		Receipts:   NewReceiptRepository(tx),
		Issues:     NewIssueRepository(tx),
		Logs:       NewAuditLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return mapStoreError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
