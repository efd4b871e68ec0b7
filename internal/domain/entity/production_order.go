package entity

import (
	"time"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
)

// ProductionOrderStatus es el estado de una orden de producción.
// Los ids numéricos vienen del sistema heredado; este tipo es el único
// mapeo autoritativo entre id y significado.
type ProductionOrderStatus int

const (
	ProductionStatusInProgress         ProductionOrderStatus = 1
	ProductionStatusCompleted          ProductionOrderStatus = 2
	ProductionStatusPending            ProductionOrderStatus = 3
	ProductionStatusPartiallyCompleted ProductionOrderStatus = 4
)

// String devuelve el nombre legible del estado.
func (s ProductionOrderStatus) String() string {
	switch s {
	case ProductionStatusInProgress:
		return "EN_PROCESO"
	case ProductionStatusCompleted:
		return "COMPLETADA"
	case ProductionStatusPending:
		return "PENDIENTE"
	case ProductionStatusPartiallyCompleted:
		return "PARCIALMENTE_COMPLETADA"
	default:
		return "DESCONOCIDO"
	}
}

// Valid indica si el id corresponde a un estado conocido.
func (s ProductionOrderStatus) Valid() bool {
	switch s {
	case ProductionStatusInProgress, ProductionStatusCompleted,
		ProductionStatusPending, ProductionStatusPartiallyCompleted:
		return true
	}
	return false
}

// Terminal indica si el estado es final: una orden completada (total o
// parcialmente) no admite más transiciones.
func (s ProductionOrderStatus) Terminal() bool {
	return s == ProductionStatusCompleted || s == ProductionStatusPartiallyCompleted
}

// CanTransitionTo valida la transición PENDIENTE → EN_PROCESO → {COMPLETADA, PARCIALMENTE_COMPLETADA}.
func (s ProductionOrderStatus) CanTransitionTo(next ProductionOrderStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	switch s {
	case ProductionStatusPending:
		return next == ProductionStatusInProgress
	case ProductionStatusInProgress:
		return next == ProductionStatusCompleted || next == ProductionStatusPartiallyCompleted
	}
	return false
}

// ProductionOrder representa una orden de producción asociada a un pedido.
// Se espera a lo sumo una orden no terminal por pedido activo.
type ProductionOrder struct {
	ID         string
	OrderID    string
	OperatorID string
	Status     ProductionOrderStatus
	StartDate  time.Time
	EndDate    *time.Time // nulo hasta finalizar
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transition aplica la transición de estado verificando primero el guard
// de estado terminal (check-then-act: nada se muta si la transición es inválida).
func (o *ProductionOrder) Transition(next ProductionOrderStatus, now time.Time) error {
	if o.Status.Terminal() {
		return domain.ErrAlreadyFinalized
	}
	if !o.Status.CanTransitionTo(next) {
		return domain.ErrConflict
	}
	o.Status = next
	o.UpdatedAt = now
	if next.Terminal() {
		end := now
		o.EndDate = &end
	}
	return nil
}
