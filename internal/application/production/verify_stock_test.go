package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

const testUserID = "user-1"

// seedBakery arma el escenario de referencia: dos productos que comparten
// harina, cada uno con su fórmula.
//
//	pan:   50 g/unidad, rinde 1000 g/lote, 200 g harina por lote
//	torta: 100 g/unidad, rinde 500 g/lote, 300 g harina + 100 g azúcar por lote
func seedBakery(e *env) {
	e.products.Create(&entity.Product{
		ID: "prod-pan", Name: "Pan", UnitWeight: decimal.NewFromInt(50), UnitMeasure: "g",
	})
	e.products.Create(&entity.Product{
		ID: "prod-torta", Name: "Torta", UnitWeight: decimal.NewFromInt(100), UnitMeasure: "g",
	})
	e.materials.Create(&entity.RawMaterial{
		ID: "mat-harina", Name: "Harina", StockActual: decimal.NewFromInt(1000),
		Status: entity.RawMaterialStatusActive,
	})
	e.materials.Create(&entity.RawMaterial{
		ID: "mat-azucar", Name: "Azúcar", StockActual: decimal.NewFromInt(500),
		Status: entity.RawMaterialStatusActive,
	})
	e.formulas.Create(&entity.Formula{
		ID: "form-pan", ProductID: "prod-pan", Name: "Receta pan",
		Yield: decimal.NewFromInt(1000),
		Lines: []entity.FormulaLine{
			{RawMaterialID: "mat-harina", QuantityPerLot: decimal.NewFromInt(200), UnitMeasure: "g"},
		},
	})
	e.formulas.Create(&entity.Formula{
		ID: "form-torta", ProductID: "prod-torta", Name: "Receta torta",
		Yield: decimal.NewFromInt(500),
		Lines: []entity.FormulaLine{
			{RawMaterialID: "mat-harina", QuantityPerLot: decimal.NewFromInt(300), UnitMeasure: "g"},
			{RawMaterialID: "mat-azucar", QuantityPerLot: decimal.NewFromInt(100), UnitMeasure: "g"},
		},
	})
}

func seedOrder(e *env, id string, lines ...entity.OrderLine) {
	e.orders.Create(&entity.CustomerOrder{
		ID: id, ClientID: "client-1", Status: entity.OrderStatusPending, Lines: lines,
	})
}

func TestVerify_StockSuficiente(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	// 20 panes = 1000 g = 1 lote = 200 g harina. Stock: 1000.
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	resp, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err)

	assert.True(t, resp.Sufficient)
	assert.Empty(t, resp.Shortfalls)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, int64(1), resp.Lines[0].Lots)
}

func TestVerify_SumaFaltantesEntreLineas(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	e.materials.materials["mat-harina"].StockActual = decimal.NewFromInt(100)
	// Dos líneas comparten la harina:
	//   pan   12 unidades = 600 g = 1 lote = 200 g harina
	//   torta  5 unidades = 500 g = 1 lote = 300 g harina + 100 g azúcar
	// Total harina = 500 contra stock 100: faltan 400. Por separado, cada
	// línea compararía contra el mismo stock y el faltante quedaría oculto.
	seedOrder(e, "order-1",
		entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(12)},
		entity.OrderLine{ProductID: "prod-torta", Quantity: decimal.NewFromInt(5)},
	)

	resp, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err)

	assert.False(t, resp.Sufficient)
	require.Len(t, resp.Shortfalls, 1, "solo la harina falta; el azúcar alcanza")
	short := resp.Shortfalls[0]
	assert.Equal(t, "mat-harina", short.RawMaterialID)
	assert.Equal(t, dto.ShortfallReasonStock, short.Reason)
	assert.True(t, decimal.NewFromInt(500).Equal(short.Required), "200 + 300 agregados antes de comparar")
	assert.True(t, decimal.NewFromInt(400).Equal(short.Missing))
	assert.ElementsMatch(t, []string{"prod-pan", "prod-torta"}, short.Products,
		"el faltante señala todos los productos que consumen la materia")
}

func TestVerify_ProductoSinFormulaNoAbortaElResto(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	e.products.Create(&entity.Product{
		ID: "prod-sin-receta", Name: "Nuevo", UnitWeight: decimal.NewFromInt(10),
	})
	seedOrder(e, "order-1",
		entity.OrderLine{ProductID: "prod-sin-receta", Quantity: decimal.NewFromInt(5)},
		entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)},
	)

	resp, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err, "una línea sin fórmula se reporta, no corta la verificación")

	assert.False(t, resp.Sufficient)
	require.Len(t, resp.Lines, 2, "la línea con fórmula igual se expande")
	assert.True(t, resp.Lines[0].MissingRecipe)
	require.Len(t, resp.Shortfalls, 1)
	assert.Equal(t, dto.ShortfallReasonNoRecipe, resp.Shortfalls[0].Reason)
	assert.Equal(t, []string{"prod-sin-receta"}, resp.Shortfalls[0].Products)
}

func TestVerify_PedidoInexistente(t *testing.T) {
	e := newEnv()
	seedBakery(e)

	_, err := e.verifier().Verify(context.Background(), "order-fantasma", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerify_NoMutaStock(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	_, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1000).Equal(e.materials.materials["mat-harina"].StockActual),
		"verificar es solo lectura")
	assert.Empty(t, e.matMovs.movements)
	assert.Empty(t, e.materials.locks, "la verificación previa no toma locks")
}

func TestVerify_CantidadCeroEsSuficiente(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.Zero})

	resp, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err)

	assert.True(t, resp.Sufficient)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, int64(0), resp.Lines[0].Lots)
}

func TestVerify_FalloDeAuditoriaNoRompeLaOperacion(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})
	e.audit.failErr = assert.AnError

	resp, err := e.verifier().Verify(context.Background(), "order-1", testUserID)

	require.NoError(t, err, "la auditoría es fire-and-forget")
	assert.True(t, resp.Sufficient)
}

func TestVerify_RegistraAuditoria(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	_, err := e.verifier().Verify(context.Background(), "order-1", testUserID)
	require.NoError(t, err)

	require.Len(t, e.audit.records, 1)
	assert.Equal(t, "VERIFICACION_STOCK", e.audit.records[0].Action)
	assert.Equal(t, "order-1", e.audit.records[0].RecordID)
	assert.Equal(t, testUserID, e.audit.records[0].UserID)
}
