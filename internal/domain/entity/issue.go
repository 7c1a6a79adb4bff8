package entity

import "time"

// Issue representa una salida de stock ("salida"). Al crearse resta Quantity del stock del producto
// y se rechaza si Quantity supera el stock disponible.
type Issue struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura
	Quantity    int64
	OccurredOn  time.Time
	Destination string
	Responsible string
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
}
