package entity

// StockReconciliation compara el saldo almacenado con el derivado del historial de movimientos.
type StockReconciliation struct {
	ProductID     string
	ProductName   string
	CategoryName  string
	Brand         string
	PrinterModel  string
	Color         string
	Unit          string
	Active        bool
	InitialStock  int64
	TotalReceipts int64
	TotalIssues   int64
	DerivedStock  int64 // InitialStock + TotalReceipts - TotalIssues
	LedgerBalance int64 // products.stock
	Discrepancy   int64 // LedgerBalance - DerivedStock
}
