package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
)

func TestMapStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"conexión", &pgconn.PgError{Code: "08006"}, domain.ErrStoreUnavailable},
		{"uuid inválido", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, domain.ErrInvalidInput},
		{"número fuera de rango", &pgconn.PgError{Code: "22003"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapStoreError(fmt.Errorf("get receipt: %w", tc.err)), tc.want)
		})
	}
}

// El texto del driver no debe viajar en errores que el handler puede mostrar.
func TestMapStoreError_ExcepcionDeDatosSinTextoDelDriver(t *testing.T) {
	err := mapStoreError(fmt.Errorf("get receipt: %w", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}))
	assert.NotContains(t, err.Error(), "uuid")
	assert.NotContains(t, err.Error(), "get receipt")
}

func TestMapStoreError_SinClasificar(t *testing.T) {
	assert.NoError(t, mapStoreError(nil))
	assert.ErrorIs(t, mapStoreError(context.Canceled), context.Canceled)

	raw := errors.New("fallo raro")
	assert.Equal(t, raw, mapStoreError(raw))
}
