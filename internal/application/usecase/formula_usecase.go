package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

// FormulaUseCase gestiona las recetas de producción.
type FormulaUseCase struct {
	formulaRepo  repository.FormulaRepository
	productRepo  repository.ProductRepository
	materialRepo repository.RawMaterialRepository
}

// NewFormulaUseCase construye el caso de uso.
func NewFormulaUseCase(
	formulaRepo repository.FormulaRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.RawMaterialRepository,
) *FormulaUseCase {
	return &FormulaUseCase{formulaRepo: formulaRepo, productRepo: productRepo, materialRepo: materialRepo}
}

// Create valida y persiste una receta: el producto debe existir y toda
// materia prima referenciada debe existir y estar activa.
func (uc *FormulaUseCase) Create(in dto.CreateFormulaRequest) (*entity.Formula, error) {
	now := time.Now()
	formula := &entity.Formula{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      in.Name,
		Yield:     in.Yield,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, line := range in.Lines {
		formula.Lines = append(formula.Lines, entity.FormulaLine{
			ID:             uuid.New().String(),
			FormulaID:      formula.ID,
			RawMaterialID:  line.RawMaterialID,
			QuantityPerLot: line.QuantityPerLot,
			UnitMeasure:    line.UnitMeasure,
		})
	}
	if err := formula.Validate(); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	for _, line := range formula.Lines {
		material, err := uc.materialRepo.GetByID(line.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		if !material.Usable() {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := uc.formulaRepo.Create(formula); err != nil {
		return nil, err
	}
	return formula, nil
}

// ListByProduct devuelve las recetas del producto ordenadas por creación.
func (uc *FormulaUseCase) ListByProduct(productID string) ([]*entity.Formula, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.formulaRepo.ListByProduct(productID)
}
