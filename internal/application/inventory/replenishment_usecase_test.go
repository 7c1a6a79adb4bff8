package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAlertList_OrdenaPorUrgencia(t *testing.T) {
	store := newMemStore()
	store.addProduct("a", 4, 5, true)  // déficit 20%
	store.addProduct("b", 0, 3, true)  // agotado
	store.addProduct("c", 1, 10, true) // déficit 90%
	store.addProduct("d", 50, 5, true) // sin alerta
	store.addProduct("e", 0, 5, false) // inactivo: no se lista

	uc := NewReplenishmentUseCase(store)
	list, err := uc.GenerateAlertList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "b", list[0].ProductID)
	assert.True(t, list[0].OutOfStock)
	assert.Equal(t, int64(5), list[0].IdealStock, "ceil(3 * 1.5)")
	assert.Equal(t, int64(5), list[0].SuggestedQty)

	assert.Equal(t, "c", list[1].ProductID)
	assert.Equal(t, int64(14), list[1].SuggestedQty)
	assert.Equal(t, "a", list[2].ProductID)
	assert.Equal(t, 3, list[2].Priority)
}
