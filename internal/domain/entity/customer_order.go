package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido de cliente. Una vez iniciada la producción el estado
// solo lo avanza el orquestador de producción, nunca el CRUD.
const (
	OrderStatusPending          = "PENDIENTE"
	OrderStatusInProduction     = "EN_PRODUCCION"
	OrderStatusReadyForDelivery = "LISTO_PARA_ENTREGA"
	OrderStatusDelivered        = "ENTREGADO"
	OrderStatusCancelled        = "ANULADO"
)

// CustomerOrder representa un pedido de cliente. Las líneas quedan fijas
// al momento de la creación.
type CustomerOrder struct {
	ID        string
	ClientID  string
	Status    string
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// OrderLine es una línea del pedido: producto y cantidad de unidades.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal // unidades pedidas
}
