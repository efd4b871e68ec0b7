package production

import (
	"context"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// TxRunner los construye sobre la tx para que toda verificación y mutación
// dentro del callback comparta los mismos locks de fila.
type Repos struct {
	Products         repository.ProductRepository
	RawMaterials     repository.RawMaterialRepository
	Formulas         repository.FormulaRepository
	Orders           repository.OrderRepository
	ProductionOrders repository.ProductionOrderRepository
	MaterialMovs     repository.RawMaterialMovementRepository
	ProductMovs      repository.ProductMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ciclo
// consumir/producir/transicionar: Commit si fn retorna nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// AuditLog puerto de auditoría. La escritura es fire-and-forget: el caller
// registra el fallo en el log y continúa, nunca revierte el negocio.
type AuditLog interface {
	Append(record *entity.AuditRecord) error
}
