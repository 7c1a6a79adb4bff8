package entity

import "time"

// Category tipo de producto (tinta, tóner, cinta, cartucho...).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
