package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de materia prima. Deshabilitar una materia prima no la borra:
// el estado y el borrado lógico son campos independientes.
const (
	RawMaterialStatusActive   = "ACTIVO"
	RawMaterialStatusInactive = "INACTIVO"
)

// RawMaterial representa una materia prima consumible en producción.
// StockActual solo lo muta el ledger de inventario (salida por consumo,
// entrada por reposición), siempre dentro de una transacción y acompañado
// de un movimiento inmutable.
type RawMaterial struct {
	ID          string
	Name        string
	StockActual decimal.Decimal
	StockMin    decimal.Decimal // umbral de reposición
	UnitMeasure string
	Status      string // ACTIVO | INACTIVO
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Usable indica si la materia prima puede participar en producción.
func (m *RawMaterial) Usable() bool {
	return m.DeletedAt == nil && m.Status == RawMaterialStatusActive
}

// BelowMinimum indica si el stock está por debajo del umbral configurado.
func (m *RawMaterial) BelowMinimum() bool {
	return m.StockActual.LessThan(m.StockMin)
}
