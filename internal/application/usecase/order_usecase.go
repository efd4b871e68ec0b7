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

// OrderUseCase gestiona pedidos de cliente. Las líneas quedan fijas al crear;
// el estado solo lo avanza el orquestador de producción una vez iniciada.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, productRepo: productRepo}
}

// Create valida las líneas (producto existente, cantidad positiva) y persiste
// el pedido en estado PENDIENTE.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*entity.CustomerOrder, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.CustomerOrder{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetByID(id string) (*entity.CustomerOrder, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List devuelve pedidos paginados.
func (uc *OrderUseCase) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	return uc.orderRepo.List(limit, offset)
}
