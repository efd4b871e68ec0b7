package repository

import (
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para RawMaterial.
// El stock solo se actualiza desde el ledger de inventario, dentro de una
// transacción y con la fila bloqueada (GetForUpdate).
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	GetForUpdate(id string) (*entity.RawMaterial, error)
	UpdateStock(materialID string, stock decimal.Decimal) error
	UpdateStatus(materialID, status string) error
	List(limit, offset int) ([]*entity.RawMaterial, error)
	SoftDelete(id string) error
}
