package repository

import "github.com/lizmareco/distrisoft-sub002/internal/domain/entity"

// FormulaRepository define el puerto de persistencia para Formula.
// Las consultas devuelven la receta con sus líneas cargadas.
type FormulaRepository interface {
	Create(formula *entity.Formula) error
	GetByID(id string) (*entity.Formula, error)
	// ListByProduct devuelve todas las fórmulas del producto ordenadas por
	// fecha de creación ascendente. La política de selección cuando hay
	// varias vive en el resolver, no acá.
	ListByProduct(productID string) ([]*entity.Formula, error)
}
