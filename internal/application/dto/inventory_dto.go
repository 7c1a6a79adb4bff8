package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de movimientos (fecha de ingreso / salida).
const DateLayout = "2006-01-02"

// NewProductDraft variante nueva que se crea al registrar su primer ingreso.
type NewProductDraft struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	CategoryID   string `json:"category_id" validate:"required,uuid"`
	Brand        string `json:"brand" validate:"omitempty,max=50"`
	PrinterModel string `json:"printer_model" validate:"omitempty,max=100"`
	Color        string `json:"color" validate:"omitempty,max=30"`
	Unit         string `json:"unit" validate:"omitempty,max=20"`
	StockMinimum int64  `json:"stock_minimum" validate:"min=0"`
}

// CreateReceiptRequest body para POST /api/receipts. Indicar product_id o new_product.
type CreateReceiptRequest struct {
	ProductID   string           `json:"product_id" validate:"omitempty,uuid"`
	NewProduct  *NewProductDraft `json:"new_product,omitempty"`
	Quantity    int64            `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	OccurredOn  string           `json:"occurred_on" validate:"omitempty,datetime=2006-01-02"`
	Responsible string           `json:"responsible" validate:"omitempty,max=100"`
	Notes       string           `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id.
type UpdateReceiptRequest struct {
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	OccurredOn  string          `json:"occurred_on" validate:"omitempty,datetime=2006-01-02"`
	Responsible string          `json:"responsible" validate:"omitempty,max=100"`
	Notes       string          `json:"notes" validate:"omitempty,max=2000"`
}

// ReceiptResponse salida de un ingreso.
type ReceiptResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	OccurredOn  string          `json:"occurred_on"`
	Responsible string          `json:"responsible"`
	Notes       string          `json:"notes"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateIssueRequest body para POST /api/issues.
type CreateIssueRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	OccurredOn  string `json:"occurred_on" validate:"omitempty,datetime=2006-01-02"`
	Destination string `json:"destination" validate:"omitempty,max=100"`
	Responsible string `json:"responsible" validate:"omitempty,max=100"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateIssueRequest body para PUT /api/issues/:id.
type UpdateIssueRequest struct {
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	OccurredOn  string `json:"occurred_on" validate:"omitempty,datetime=2006-01-02"`
	Destination string `json:"destination" validate:"omitempty,max=100"`
	Responsible string `json:"responsible" validate:"omitempty,max=100"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// IssueResponse salida de una salida de stock.
type IssueResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	OccurredOn  string    `json:"occurred_on"`
	Destination string    `json:"destination"`
	Responsible string    `json:"responsible"`
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockReconciliationDTO conciliación de un producto (GET /api/products/:id/reconciliation y consolidado).
type StockReconciliationDTO struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	CategoryName  string `json:"category_name"`
	Brand         string `json:"brand"`
	PrinterModel  string `json:"printer_model"`
	Color         string `json:"color"`
	Unit          string `json:"unit"`
	InitialStock  int64  `json:"initial_stock"`
	TotalReceipts int64  `json:"total_receipts"`
	TotalIssues   int64  `json:"total_issues"`
	DerivedStock  int64  `json:"derived_stock"`
	LedgerBalance int64  `json:"ledger_balance"`
	Discrepancy   int64  `json:"discrepancy"`
}

// StockAlertDTO producto en alerta (stock <= stock mínimo) con la reposición sugerida.
type StockAlertDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	Brand        string `json:"brand"`
	PrinterModel string `json:"printer_model"`
	Color        string `json:"color"`
	Unit         string `json:"unit"`
	CurrentStock int64  `json:"current_stock"`
	StockMinimum int64  `json:"stock_minimum"`
	IdealStock   int64  `json:"ideal_stock"`   // StockMinimo * 1.5
	SuggestedQty int64  `json:"suggested_qty"` // IdealStock - CurrentStock
	OutOfStock   bool   `json:"out_of_stock"`
	Priority     int    `json:"priority"` // 1 = más urgente
}

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
