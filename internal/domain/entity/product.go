package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado del catálogo.
// StockActual es un agregado denormalizado: solo lo muta el ledger de inventario
// (entrada por producción); debe coincidir con la suma firmada de los movimientos.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitWeight  decimal.Decimal // masa por unidad (ej. gramos)
	StockActual decimal.Decimal // unidades
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // borrado lógico; nunca se elimina físicamente
}

// Active indica si el producto sigue vigente (no borrado lógicamente).
func (p *Product) Active() bool {
	return p.DeletedAt == nil
}
