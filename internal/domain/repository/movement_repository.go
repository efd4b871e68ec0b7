package repository

import (
	"time"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// RawMaterialMovementRepository define el puerto para el ledger de materia
// prima. Append-only: no hay Update ni Delete.
type RawMaterialMovementRepository interface {
	Create(movement *entity.RawMaterialMovement) error
	ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.RawMaterialMovement, error)
	ListByProductionOrder(productionOrderID string) ([]*entity.RawMaterialMovement, error)
}

// ProductMovementRepository define el puerto para el ledger de producto
// terminado. Append-only.
type ProductMovementRepository interface {
	Create(movement *entity.ProductMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductMovement, error)
	ListByProductionOrder(productionOrderID string) ([]*entity.ProductMovement, error)
}

// AuditLogRepository define el puerto append-only del log de auditoría.
type AuditLogRepository interface {
	Append(record *entity.AuditRecord) error
}
