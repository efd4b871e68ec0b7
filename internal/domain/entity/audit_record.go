package entity

import "time"

// AuditRecord es una entrada del log de auditoría. La escritura es
// fire-and-forget desde el punto de vista del negocio: un fallo al auditar
// nunca revierte la transacción que lo originó.
type AuditRecord struct {
	ID        string
	Entity    string // tabla/entidad afectada
	RecordID  string
	Action    string // VERIFICACION_STOCK, INICIO_PRODUCCION, FIN_PRODUCCION, ...
	Before    string // snapshot JSON previo (vacío en lecturas)
	After     string // snapshot JSON posterior
	UserID    string
	RequestIP string
	CreatedAt time.Time
}
