package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts      int64  `json:"total_products"`
	TotalStock         int64  `json:"total_stock"`
	LowStockProducts   int64  `json:"low_stock_products"`    // stock <= stock mínimo
	OutOfStockProducts int64  `json:"out_of_stock_products"` // stock = 0
	ActiveProducts     int64  `json:"active_products"`
	InactiveProducts   int64  `json:"inactive_products"`
	LastReceiptDate    string `json:"last_receipt_date"` // "Sin registros" si no hay ingresos

	// Top 5 productos más entregados por salidas
	TopIssued []TopIssuedDTO `json:"top_issued"`
}

// TopIssuedDTO producto y cantidad total entregada.
type TopIssuedDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalIssued int64  `json:"total_issued"`
}

// KPIsDTO indicadores de GET /api/reports/kpis.
type KPIsDTO struct {
	TotalProducts  int64 `json:"total_products"`
	AlertProducts  int64 `json:"alert_products"`
	NormalProducts int64 `json:"normal_products"`
	TotalStock     int64 `json:"total_stock"`
}
