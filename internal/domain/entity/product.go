package entity

import (
	"strings"
	"time"
)

// Product representa un suministro de impresión (tinta, tóner, cinta) del catálogo.
// Stock es el saldo corriente y solo se modifica a través del Ledger (ingresos/salidas);
// InitialStock es el saldo con el que se creó el producto y sirve de base para la conciliación.
type Product struct {
	ID           string
	Name         string
	CategoryID   string
	CategoryName string // solo lectura (JOIN con categories)
	Brand        string
	PrinterModel string
	Color        string
	Unit         string
	InitialStock int64
	Stock        int64
	StockMinimum int64 // punto de reorden
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InAlert indica si el stock llegó al mínimo de reposición.
func (p *Product) InAlert() bool {
	return p.Stock <= p.StockMinimum
}

// VariantKey identifica una variante de producto (nombre + categoría + marca + modelo + color),
// sin distinguir mayúsculas. Se usa para reutilizar el producto al registrar un ingreso de una variante nueva.
type VariantKey struct {
	Name         string
	CategoryID   string
	Brand        string
	PrinterModel string
	Color        string
}

// Normalize recorta espacios y pasa a minúsculas los campos de texto.
func (k VariantKey) Normalize() VariantKey {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return VariantKey{
		Name:         norm(k.Name),
		CategoryID:   strings.TrimSpace(k.CategoryID),
		Brand:        norm(k.Brand),
		PrinterModel: norm(k.PrinterModel),
		Color:        norm(k.Color),
	}
}
