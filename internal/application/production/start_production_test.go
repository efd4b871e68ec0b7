package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

const testOperatorID = "operator-1"

func TestStart_CreaOrdenYPasaPedidoAProduccion(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	po, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.ProductionStatusPending, po.Status)
	assert.Equal(t, "order-1", po.OrderID)
	assert.Equal(t, testOperatorID, po.OperatorID)
	assert.Equal(t, entity.OrderStatusInProduction, e.orders.orders["order-1"].Status)
	assert.NotEmpty(t, po.ID)
}

func TestStart_SinStockNoCreaNada(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	e.materials.materials["mat-harina"].StockActual = decimal.NewFromInt(10)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	_, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insufficient *production.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, "mat-harina", insufficient.Shortfalls[0].RawMaterialID)

	assert.Empty(t, e.prodOrders.orders, "sin stock no se crea la orden de producción")
	assert.Equal(t, entity.OrderStatusPending, e.orders.orders["order-1"].Status, "el pedido no cambia de estado")
}

func TestStart_ProductoSinFormulaBloqueaElInicio(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	e.products.Create(&entity.Product{ID: "prod-nuevo", Name: "Nuevo", UnitWeight: decimal.NewFromInt(10)})
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-nuevo", Quantity: decimal.NewFromInt(5)})

	_, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)

	var insufficient *production.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Empty(t, e.prodOrders.orders)
}

func TestStart_PedidoYaEnProduccion(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})
	e.orders.orders["order-1"].Status = entity.OrderStatusInProduction

	_, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStart_SegundaOrdenActivaRechazada(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})

	_, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)
	require.NoError(t, err)

	// El pedido quedó EN_PRODUCCION; forzar de nuevo PENDIENTE para aislar
	// el guard de orden activa del guard de estado del pedido.
	e.orders.orders["order-1"].Status = entity.OrderStatusPending

	_, err = e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)
	assert.ErrorIs(t, err, domain.ErrProductionExists)
}

func TestStart_OrdenTerminalNoBloqueaUnNuevoInicio(t *testing.T) {
	e := newEnv()
	seedBakery(e)
	seedOrder(e, "order-1", entity.OrderLine{ProductID: "prod-pan", Quantity: decimal.NewFromInt(20)})
	e.prodOrders.Create(&entity.ProductionOrder{
		ID: "po-viejo", OrderID: "order-1", Status: entity.ProductionStatusCompleted,
	})

	po, err := e.starter().Start(context.Background(), "order-1", testOperatorID, testUserID)
	require.NoError(t, err, "una orden terminal no cuenta como activa")
	assert.NotEqual(t, "po-viejo", po.ID)
}

func TestStart_ParametrosVacios(t *testing.T) {
	e := newEnv()
	_, err := e.starter().Start(context.Background(), "", testOperatorID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.starter().Start(context.Background(), "order-1", "", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBegin_PendienteAEnProceso(t *testing.T) {
	e := newEnv()
	e.prodOrders.Create(&entity.ProductionOrder{
		ID: "po-1", OrderID: "order-1", Status: entity.ProductionStatusPending,
	})

	po, err := e.starter().Begin(context.Background(), "po-1", testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.ProductionStatusInProgress, po.Status)
	assert.Equal(t, entity.ProductionStatusInProgress, e.prodOrders.orders["po-1"].Status)
}

func TestBegin_OrdenFinalizada(t *testing.T) {
	e := newEnv()
	e.prodOrders.Create(&entity.ProductionOrder{
		ID: "po-1", OrderID: "order-1", Status: entity.ProductionStatusCompleted,
	})

	_, err := e.starter().Begin(context.Background(), "po-1", testUserID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestBegin_OrdenInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.starter().Begin(context.Background(), "po-fantasma", testUserID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
