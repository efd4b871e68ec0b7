package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de insuficiencia en la verificación de stock.
const (
	ShortfallReasonStock    = "STOCK_INSUFICIENTE"
	ShortfallReasonNoRecipe = "SIN_FORMULA"
)

// MaterialRequirementDTO necesidad de una materia prima para una línea del pedido.
type MaterialRequirementDTO struct {
	RawMaterialID string          `json:"raw_material_id"`
	Name          string          `json:"name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitMeasure   string          `json:"unit_measure,omitempty"`
}

// LineRequirementDTO resultado de expandir una línea del pedido contra su fórmula.
type LineRequirementDTO struct {
	ProductID     string                   `json:"product_id"`
	ProductName   string                   `json:"product_name,omitempty"`
	Quantity      decimal.Decimal          `json:"quantity"`
	TotalMass     decimal.Decimal          `json:"total_mass"`
	Lots          int64                    `json:"lots"`
	Materials     []MaterialRequirementDTO `json:"materials,omitempty"`
	MissingRecipe bool                     `json:"missing_recipe,omitempty"`
}

// ShortfallDTO faltante de una materia prima: cuánto hay, cuánto se necesita
// y qué productos del pedido originan la necesidad.
type ShortfallDTO struct {
	RawMaterialID string          `json:"raw_material_id,omitempty"`
	Name          string          `json:"name,omitempty"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
	Missing       decimal.Decimal `json:"missing"`
	Reason        string          `json:"reason"`
	Products      []string        `json:"products,omitempty"`
}

// StockVerificationResponse reporte de suficiencia de stock para un pedido.
type StockVerificationResponse struct {
	OrderID    string               `json:"order_id"`
	Sufficient bool                 `json:"sufficient"`
	Lines      []LineRequirementDTO `json:"lines"`
	Shortfalls []ShortfallDTO       `json:"shortfalls,omitempty"`
}

// StartProductionRequest body para iniciar la producción de un pedido.
type StartProductionRequest struct {
	OperatorID string `json:"operator_id"`
}

// ProductionOrderResponse representación de una orden de producción.
type ProductionOrderResponse struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	OperatorID string     `json:"operator_id"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// FinalizeItemRequest ítem producido en una finalización parcial.
type FinalizeItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// FinalizeProductionRequest body para finalizar una orden de producción.
// Mode: FULL finaliza todas las líneas del pedido; PARTIAL solo los items indicados.
type FinalizeProductionRequest struct {
	Mode  string                `json:"mode"`
	Items []FinalizeItemRequest `json:"items,omitempty"`
}

// FinalizeProductionResponse resumen de la finalización.
type FinalizeProductionResponse struct {
	ProductionOrderID string     `json:"production_order_id"`
	PreviousStatus    string     `json:"previous_status"`
	NewStatus         string     `json:"new_status"`
	OrderStatus       string     `json:"order_status"`
	MaterialsConsumed int        `json:"materials_consumed"`
	ProductsProduced  int        `json:"products_produced"`
	EndDate           *time.Time `json:"end_date,omitempty"`
}
