package production

import (
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// MaterialRequirement es la necesidad total de una materia prima para
// fabricar una cantidad pedida de un producto.
type MaterialRequirement struct {
	RawMaterialID string
	Quantity      decimal.Decimal
	UnitMeasure   string
}

// Requirement es el resultado de expandir una línea de pedido contra la
// fórmula del producto: lotes necesarios y materia prima por línea de receta.
type Requirement struct {
	ProductID string
	Quantity  decimal.Decimal // unidades pedidas
	TotalMass decimal.Decimal // Quantity * UnitWeight
	Lots      int64
	Materials []MaterialRequirement
}

// ComputeRequirement expande una cantidad pedida a necesidades de materia prima
// (servicio de dominio, sin efectos):
//
//	TotalMass = cantidad * peso unitario
//	Lots      = ceil(TotalMass / rendimiento)
//	Material  = cantidad por lote * Lots
//
// Los lotes siempre se redondean hacia arriba: no hay lotes parciales, producir
// una fracción más de masa exige un lote completo adicional (sobreproducción
// asumida). Cantidad cero produce cero lotes y no es error.
func ComputeRequirement(product *entity.Product, formula *entity.Formula, quantity decimal.Decimal) (*Requirement, error) {
	if product == nil || formula == nil {
		return nil, domain.ErrInvalidInput
	}
	if quantity.IsNegative() || !formula.Yield.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	totalMass := quantity.Mul(product.UnitWeight)
	lots := totalMass.Div(formula.Yield).Ceil().IntPart()

	req := &Requirement{
		ProductID: product.ID,
		Quantity:  quantity,
		TotalMass: totalMass,
		Lots:      lots,
	}
	if lots == 0 {
		return req, nil
	}

	lotsDec := decimal.NewFromInt(lots)
	for _, line := range formula.Lines {
		req.Materials = append(req.Materials, MaterialRequirement{
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.QuantityPerLot.Mul(lotsDec),
			UnitMeasure:   line.UnitMeasure,
		})
	}
	return req, nil
}

// AggregateMaterials acumula las necesidades de varias líneas de pedido por
// materia prima. Dos líneas que consumen la misma materia deben sumarse antes
// de comparar contra el stock disponible; compararlas por separado
// sobreestima la suficiencia.
func AggregateMaterials(reqs []*Requirement) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(reqs))
	for _, req := range reqs {
		if req == nil {
			continue
		}
		for _, mat := range req.Materials {
			totals[mat.RawMaterialID] = totals[mat.RawMaterialID].Add(mat.Quantity)
		}
	}
	return totals
}
