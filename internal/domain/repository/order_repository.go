package repository

import "github.com/lizmareco/distrisoft-sub002/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos de cliente.
// GetByID devuelve el pedido con sus líneas cargadas.
type OrderRepository interface {
	Create(order *entity.CustomerOrder) error
	GetByID(id string) (*entity.CustomerOrder, error)
	UpdateStatus(orderID, status string) error
	List(limit, offset int) ([]*entity.CustomerOrder, error)
}

// ProductionOrderRepository define el puerto de persistencia para órdenes
// de producción.
type ProductionOrderRepository interface {
	Create(po *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	// GetForUpdate bloquea la fila de la orden mientras dura la transacción
	// de finalización (guard de doble finalización bajo concurrencia).
	GetForUpdate(id string) (*entity.ProductionOrder, error)
	// FindActiveByOrder devuelve la orden no terminal del pedido, o nil.
	FindActiveByOrder(orderID string) (*entity.ProductionOrder, error)
	Update(po *entity.ProductionOrder) error
}
