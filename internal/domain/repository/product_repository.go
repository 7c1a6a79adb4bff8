package repository

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// ProductFilter filtros para listar productos. Active nil = todos.
type ProductFilter struct {
	Active     *bool
	CategoryID string
	Query      string // búsqueda por nombre, marca o modelo
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	FindByVariant(ctx context.Context, key entity.VariantKey) (*entity.Product, error)
	// Update modifica solo los campos descriptivos y el stock mínimo; nunca el stock.
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	// AdjustStock aplica stock = stock + delta de forma atómica y condicional (stock + delta >= 0).
	// Devuelve domain.ErrInsufficientStock si el saldo quedaría negativo.
	AdjustStock(ctx context.Context, id string, delta int64) (int64, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete elimina el producto; devuelve domain.ErrInUse si tiene movimientos.
	Delete(ctx context.Context, id string) error
}
