package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeRequirement expande una línea de pedido a lotes y materia prima:
//
//	TotalMass = cantidad * peso unitario
//	Lots      = ceil(TotalMass / rendimiento)
//
// Caso de referencia: producto de 50 g/unidad, fórmula que rinde 1000 g por
// lote y consume 200 g de harina por lote. Pedido de 25 unidades:
//
//	TotalMass = 25 * 50 = 1250 g
//	Lots      = ceil(1250 / 1000) = 2  (el excedente exige lote completo)
//	Harina    = 2 * 200 = 400 g
// ──────────────────────────────────────────────────────────────────────────────

func productoDe50g() *entity.Product {
	return &entity.Product{
		ID:          "prod-1",
		Name:        "Pan dulce",
		UnitWeight:  decimal.NewFromInt(50),
		UnitMeasure: "g",
	}
}

func formulaDe1000g() *entity.Formula {
	return &entity.Formula{
		ID:        "form-1",
		ProductID: "prod-1",
		Name:      "Receta base",
		Yield:     decimal.NewFromInt(1000),
		Lines: []entity.FormulaLine{
			{RawMaterialID: "mat-harina", QuantityPerLot: decimal.NewFromInt(200), UnitMeasure: "g"},
		},
	}
}

func TestComputeRequirement_RedondeaLotesHaciaArriba(t *testing.T) {
	req, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1250).Equal(req.TotalMass), "masa total = 25 * 50")
	assert.Equal(t, int64(2), req.Lots, "1250 g sobre un rendimiento de 1000 g exige 2 lotes")
	require.Len(t, req.Materials, 1)
	assert.True(t, decimal.NewFromInt(400).Equal(req.Materials[0].Quantity), "harina = 2 lotes * 200 g")
}

func TestComputeRequirement_MasaExactaNoAgregaLote(t *testing.T) {
	// 20 unidades * 50 g = 1000 g: exactamente un lote.
	req, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), decimal.NewFromInt(20))
	require.NoError(t, err)

	assert.Equal(t, int64(1), req.Lots)
	assert.True(t, decimal.NewFromInt(200).Equal(req.Materials[0].Quantity))
}

func TestComputeRequirement_UnaUnidadDeMasExigeLoteCompleto(t *testing.T) {
	// 21 unidades * 50 g = 1050 g: apenas por encima de un lote, se necesitan 2.
	req, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), decimal.NewFromInt(21))
	require.NoError(t, err)

	assert.Equal(t, int64(2), req.Lots)
	assert.True(t, decimal.NewFromInt(400).Equal(req.Materials[0].Quantity))
}

func TestComputeRequirement_CantidadCeroEsCeroLotesSinError(t *testing.T) {
	req, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), decimal.Zero)
	require.NoError(t, err, "cantidad cero es un pedido vacío, no un error")

	assert.Equal(t, int64(0), req.Lots)
	assert.Empty(t, req.Materials, "cero lotes no consumen materia prima")
}

func TestComputeRequirement_CantidadFraccionaria(t *testing.T) {
	// 10.5 unidades * 50 g = 525 g: un lote alcanza.
	qty, err := decimal.NewFromString("10.5")
	require.NoError(t, err)

	req, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), qty)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(525).Equal(req.TotalMass))
	assert.Equal(t, int64(1), req.Lots)
}

func TestComputeRequirement_ErrorSiCantidadNegativa(t *testing.T) {
	_, err := production.ComputeRequirement(productoDe50g(), formulaDe1000g(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeRequirement_ErrorSiRendimientoCero(t *testing.T) {
	formula := formulaDe1000g()
	formula.Yield = decimal.Zero

	_, err := production.ComputeRequirement(productoDe50g(), formula, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeRequirement_ErrorSiProductoNil(t *testing.T) {
	_, err := production.ComputeRequirement(nil, formulaDe1000g(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── AggregateMaterials ────────────────────────────────────────────────────────

func TestAggregateMaterials_SumaLineasSobreLaMismaMateria(t *testing.T) {
	// Dos líneas del pedido consumen la misma harina: 60 + 60 = 120.
	// Compararlas por separado contra un stock de 100 daría suficiente dos
	// veces; la suma revela el faltante.
	reqs := []*production.Requirement{
		{
			ProductID: "prod-1",
			Materials: []production.MaterialRequirement{
				{RawMaterialID: "mat-harina", Quantity: decimal.NewFromInt(60)},
			},
		},
		{
			ProductID: "prod-2",
			Materials: []production.MaterialRequirement{
				{RawMaterialID: "mat-harina", Quantity: decimal.NewFromInt(60)},
				{RawMaterialID: "mat-azucar", Quantity: decimal.NewFromInt(30)},
			},
		},
	}

	totals := production.AggregateMaterials(reqs)

	require.Len(t, totals, 2)
	assert.True(t, decimal.NewFromInt(120).Equal(totals["mat-harina"]))
	assert.True(t, decimal.NewFromInt(30).Equal(totals["mat-azucar"]))
}

func TestAggregateMaterials_IgnoraRequerimientosNil(t *testing.T) {
	totals := production.AggregateMaterials([]*production.Requirement{nil})
	assert.Empty(t, totals)
}
