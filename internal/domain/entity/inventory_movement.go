package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "ENTRADA" // reposición o alta por producción
	MovementTypeSalida  = "SALIDA"  // consumo en producción
)

// RawMaterialMovement es el registro inmutable de un movimiento de materia
// prima. Es el sistema de registro de los deltas de stock: append-only,
// nunca se actualiza ni se borra.
type RawMaterialMovement struct {
	ID                string
	RawMaterialID     string
	Type              string          // ENTRADA | SALIDA
	Quantity          decimal.Decimal // firmada: positiva entrada, negativa salida
	ProductionOrderID string          // vacío si no proviene de producción
	Motive            string
	Observation       string
	Date              time.Time
	CreatedAt         time.Time
	CreatedBy         string
}

// ProductMovement es el registro inmutable de un movimiento de producto
// terminado (alta por producción, baja por entrega).
type ProductMovement struct {
	ID                string
	ProductID         string
	Type              string
	Quantity          decimal.Decimal // firmada
	ProductionOrderID string
	Motive            string
	Observation       string
	Date              time.Time
	CreatedAt         time.Time
	CreatedBy         string
}
