package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt representa un ingreso de stock ("ingreso"). Al crearse suma Quantity al stock del producto.
type Receipt struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity * UnitPrice
	OccurredOn  time.Time
	Responsible string
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
}
