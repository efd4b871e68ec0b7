package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
)

// Formula es la receta (bill of materials) de un producto: cuánta masa produce
// un lote y cuánta materia prima consume cada lote.
type Formula struct {
	ID        string
	ProductID string
	Name      string
	Yield     decimal.Decimal // masa producida por lote
	Lines     []FormulaLine   // ordenadas por posición
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// FormulaLine es una línea de la receta: materia prima y cantidad por lote.
type FormulaLine struct {
	ID             string
	FormulaID      string
	RawMaterialID  string
	QuantityPerLot decimal.Decimal
	UnitMeasure    string
}

// Validate verifica los invariantes de la receta: rendimiento positivo
// y toda línea con cantidad positiva.
func (f *Formula) Validate() error {
	if f.ProductID == "" || !f.Yield.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if len(f.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range f.Lines {
		if line.RawMaterialID == "" || !line.QuantityPerLot.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
