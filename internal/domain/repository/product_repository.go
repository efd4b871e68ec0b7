package repository

import (
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE);
	// solo tiene sentido con un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	SoftDelete(id string) error
}
