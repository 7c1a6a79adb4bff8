package dto

import "time"

// CreateCategoryRequest entrada para crear un tipo de producto.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// CategoryResponse salida de un tipo de producto.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest entrada para crear un producto. InitialStock es el saldo de apertura.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	CategoryID   string `json:"category_id" validate:"required,uuid"`
	Brand        string `json:"brand" validate:"omitempty,max=50"`
	PrinterModel string `json:"printer_model" validate:"omitempty,max=100"`
	Color        string `json:"color" validate:"omitempty,max=30"`
	Unit         string `json:"unit" validate:"omitempty,max=20"`
	InitialStock int64  `json:"initial_stock" validate:"min=0"`
	StockMinimum int64  `json:"stock_minimum" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: se maneja vía ingresos/salidas).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	CategoryID   *string `json:"category_id" validate:"omitempty,uuid"`
	Brand        *string `json:"brand" validate:"omitempty,max=50"`
	PrinterModel *string `json:"printer_model" validate:"omitempty,max=100"`
	Color        *string `json:"color" validate:"omitempty,max=30"`
	Unit         *string `json:"unit" validate:"omitempty,max=20"`
	StockMinimum *int64  `json:"stock_minimum" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Brand        string    `json:"brand"`
	PrinterModel string    `json:"printer_model"`
	Color        string    `json:"color"`
	Unit         string    `json:"unit"`
	InitialStock int64     `json:"initial_stock"`
	Stock        int64     `json:"stock"`
	StockMinimum int64     `json:"stock_minimum"`
	InAlert      bool      `json:"in_alert"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
