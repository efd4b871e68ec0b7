package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo. El stock no se edita por
// acá: solo lo muta el ledger de inventario.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.ProductMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, movRepo repository.ProductMovementRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movRepo: movRepo}
}

// Create da de alta un producto con stock cero.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || !in.UnitWeight.GreaterThan(decimal.Zero) || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		UnitWeight:  in.UnitWeight,
		StockActual: decimal.Zero,
		UnitMeasure: in.UnitMeasure,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List devuelve los productos activos paginados.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// Delete hace borrado lógico; los movimientos históricos se conservan.
func (uc *ProductUseCase) Delete(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.productRepo.SoftDelete(id)
}

// Movements lista el ledger del producto (solo lectura, para auditar que
// el stock actual coincide con la suma firmada de movimientos).
func (uc *ProductUseCase) Movements(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
