package entity

import "time"

// Acciones registradas en la bitácora.
const (
	ActionReceiptCreated = "INGRESO_CREADO"
	ActionReceiptUpdated = "INGRESO_EDITADO"
	ActionReceiptDeleted = "INGRESO_ELIMINADO"
	ActionIssueCreated   = "SALIDA_CREADA"
	ActionIssueUpdated   = "SALIDA_EDITADA"
	ActionIssueDeleted   = "SALIDA_ELIMINADA"
	ActionProductCreated = "PRODUCTO_CREADO"
)

// AuditLog registro de bitácora de una mutación del inventario.
type AuditLog struct {
	ID        string
	UserID    string
	Username  string // solo lectura
	Action    string
	Entity    string // receipt, issue, product
	EntityID  string
	Detail    string
	CreatedAt time.Time
}
