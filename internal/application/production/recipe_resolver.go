package production

import (
	"errors"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

// FormulaPolicy decide qué receta gana cuando un producto tiene varias.
// El sistema heredado tomaba "la primera que aparezca" sin regla de negocio
// documentada; acá la política es explícita y configurable.
type FormulaPolicy string

const (
	// FormulaPolicyOldest usa la receta más antigua (comportamiento heredado).
	FormulaPolicyOldest FormulaPolicy = "oldest"
	// FormulaPolicyNewest usa la receta creada más recientemente.
	FormulaPolicyNewest FormulaPolicy = "newest"
)

// ParseFormulaPolicy valida el valor de configuración; vacío usa la política heredada.
func ParseFormulaPolicy(s string) (FormulaPolicy, error) {
	switch FormulaPolicy(s) {
	case FormulaPolicyOldest, FormulaPolicyNewest:
		return FormulaPolicy(s), nil
	case "":
		return FormulaPolicyOldest, nil
	}
	return "", errors.New("política de fórmula desconocida: " + s)
}

// ResolveFormula devuelve la receta activa del producto con sus líneas cargadas.
// Sin recetas retorna ErrNoRecipeDefined: condición recuperable que el
// verificador reporta como faltante, no como error del sistema.
func ResolveFormula(repo repository.FormulaRepository, productID string, policy FormulaPolicy) (*entity.Formula, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	formulas, err := repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	if len(formulas) == 0 {
		return nil, domain.ErrNoRecipeDefined
	}
	// ListByProduct ordena por fecha de creación ascendente.
	if policy == FormulaPolicyNewest {
		return formulas[len(formulas)-1], nil
	}
	return formulas[0], nil
}
