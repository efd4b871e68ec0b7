package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitWeight  decimal.Decimal `json:"unit_weight"`
	UnitMeasure string          `json:"unit_measure"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitWeight  decimal.Decimal `json:"unit_weight"`
	StockActual decimal.Decimal `json:"stock_actual"`
	UnitMeasure string          `json:"unit_measure"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateRawMaterialRequest body para POST /api/raw-materials.
type CreateRawMaterialRequest struct {
	Name         string          `json:"name"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	StockMin     decimal.Decimal `json:"stock_min"`
	UnitMeasure  string          `json:"unit_measure"`
}

// RawMaterialResponse representación de una materia prima.
type RawMaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	StockActual decimal.Decimal `json:"stock_actual"`
	StockMin    decimal.Decimal `json:"stock_min"`
	UnitMeasure string          `json:"unit_measure"`
	Status      string          `json:"status"`
	BelowMin    bool            `json:"below_min"`
}

// RestockRequest body para reponer stock de una materia prima (ENTRADA).
type RestockRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Motive      string          `json:"motive,omitempty"`
	Observation string          `json:"observation,omitempty"`
}

// FormulaLineRequest línea de receta en la creación de una fórmula.
type FormulaLineRequest struct {
	RawMaterialID  string          `json:"raw_material_id"`
	QuantityPerLot decimal.Decimal `json:"quantity_per_lot"`
	UnitMeasure    string          `json:"unit_measure,omitempty"`
}

// CreateFormulaRequest body para POST /api/formulas.
type CreateFormulaRequest struct {
	ProductID string               `json:"product_id"`
	Name      string               `json:"name"`
	Yield     decimal.Decimal      `json:"yield"`
	Lines     []FormulaLineRequest `json:"lines"`
}

// OrderLineRequest línea de pedido en la creación.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id"`
	Lines    []OrderLineRequest `json:"lines"`
}

// MovementResponse representación de un movimiento de inventario
// (materia prima o producto terminado).
type MovementResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Quantity          decimal.Decimal `json:"quantity"`
	ProductionOrderID string          `json:"production_order_id,omitempty"`
	Motive            string          `json:"motive,omitempty"`
	Observation       string          `json:"observation,omitempty"`
	Date              time.Time       `json:"date"`
	CreatedBy         string          `json:"created_by,omitempty"`
}

// FormulaResponse representación de una fórmula con sus líneas.
type FormulaResponse struct {
	ID        string                `json:"id"`
	ProductID string                `json:"product_id"`
	Name      string                `json:"name"`
	Yield     decimal.Decimal       `json:"yield"`
	Lines     []FormulaLineResponse `json:"lines"`
	CreatedAt time.Time             `json:"created_at"`
}

// FormulaLineResponse línea de una fórmula.
type FormulaLineResponse struct {
	RawMaterialID  string          `json:"raw_material_id"`
	QuantityPerLot decimal.Decimal `json:"quantity_per_lot"`
	UnitMeasure    string          `json:"unit_measure,omitempty"`
}

// OrderResponse representación de un pedido de cliente.
type OrderResponse struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Status    string              `json:"status"`
	Lines     []OrderLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderLineResponse línea de un pedido.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}
