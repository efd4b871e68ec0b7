package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

// RawMaterialUseCase gestiona materias primas. La reposición pasa por el
// ledger (movimiento ENTRADA dentro de una transacción), no por un UPDATE
// directo del stock.
type RawMaterialUseCase struct {
	materialRepo repository.RawMaterialRepository
	movRepo      repository.RawMaterialMovementRepository
	txRunner     production.TxRunner
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.RawMaterialMovementRepository,
	txRunner production.TxRunner,
) *RawMaterialUseCase {
	return &RawMaterialUseCase{materialRepo: materialRepo, movRepo: movRepo, txRunner: txRunner}
}

// Create da de alta una materia prima. El stock inicial queda registrado
// también como movimiento ENTRADA para que el ledger reconstruya el total.
func (uc *RawMaterialUseCase) Create(ctx context.Context, userID string, in dto.CreateRawMaterialRequest) (*entity.RawMaterial, error) {
	if in.Name == "" || in.UnitMeasure == "" || in.InitialStock.IsNegative() || in.StockMin.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	material := &entity.RawMaterial{
		ID:          uuid.New().String(),
		Name:        in.Name,
		StockActual: in.InitialStock,
		StockMin:    in.StockMin,
		UnitMeasure: in.UnitMeasure,
		Status:      entity.RawMaterialStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(repos production.Repos) error {
		if err := repos.RawMaterials.Create(material); err != nil {
			return err
		}
		if material.StockActual.IsZero() {
			return nil
		}
		return repos.MaterialMovs.Create(&entity.RawMaterialMovement{
			RawMaterialID: material.ID,
			Type:          entity.MovementTypeEntrada,
			Quantity:      material.StockActual,
			Motive:        "STOCK_INICIAL",
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// Restock repone stock: bloquea la fila, suma la cantidad y registra el
// movimiento ENTRADA en la misma transacción.
func (uc *RawMaterialUseCase) Restock(ctx context.Context, materialID, userID string, in dto.RestockRequest) (*entity.RawMaterial, error) {
	if materialID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var material *entity.RawMaterial
	err := uc.txRunner.Run(ctx, func(repos production.Repos) error {
		var err error
		material, err = repos.RawMaterials.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		material.StockActual = material.StockActual.Add(in.Quantity)
		if err := repos.RawMaterials.UpdateStock(material.ID, material.StockActual); err != nil {
			return err
		}
		motive := in.Motive
		if motive == "" {
			motive = "REPOSICION"
		}
		return repos.MaterialMovs.Create(&entity.RawMaterialMovement{
			RawMaterialID: material.ID,
			Type:          entity.MovementTypeEntrada,
			Quantity:      in.Quantity,
			Motive:        motive,
			Observation:   in.Observation,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// GetByID obtiene una materia prima por id.
func (uc *RawMaterialUseCase) GetByID(id string) (*entity.RawMaterial, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return material, nil
}

// List devuelve las materias primas paginadas.
func (uc *RawMaterialUseCase) List(limit, offset int) ([]*entity.RawMaterial, error) {
	return uc.materialRepo.List(limit, offset)
}

// SetStatus habilita o deshabilita una materia prima. Deshabilitar no borra:
// el estado es independiente del borrado lógico.
func (uc *RawMaterialUseCase) SetStatus(id, status string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if status != entity.RawMaterialStatusActive && status != entity.RawMaterialStatusInactive {
		return domain.ErrInvalidInput
	}
	return uc.materialRepo.UpdateStatus(id, status)
}

// Movements lista el ledger de la materia prima.
func (uc *RawMaterialUseCase) Movements(materialID string, from, to *time.Time, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByMaterial(materialID, from, to, limit, offset)
}
