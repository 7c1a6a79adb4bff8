package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier lo que los repositorios necesitan de la conexión. Lo cumplen *pgxpool.Pool y pgx.Tx,
// de modo que el mismo repo sirve para lecturas sueltas y dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// rowScanner une pgx.Row y pgx.Rows para compartir las funciones scan*.
type rowScanner interface {
	Scan(dest ...any) error
}

// whereBuilder arma cláusulas WHERE con placeholders numerados ($1, $2...).
type whereBuilder struct {
	clauses []string
	args    []any
}

// add agrega una condición; cond lleva un único %d que se reemplaza por el número de parámetro.
func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.clauses = append(b.clauses, fmt.Sprintf(cond, len(b.args)))
}

func (b *whereBuilder) sql() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// page agrega LIMIT/OFFSET si limit > 0.
func (b *whereBuilder) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	b.args = append(b.args, limit, offset)
	n := len(b.args)
	return fmt.Sprintf(" LIMIT $%d", n-1) + fmt.Sprintf(" OFFSET $%d", n)
}

// nullable devuelve nil para strings vacíos (columnas uuid opcionales).
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
