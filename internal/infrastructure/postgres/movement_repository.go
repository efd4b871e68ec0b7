package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.RawMaterialMovementRepository = (*RawMaterialMovementRepo)(nil)
var _ repository.ProductMovementRepository = (*ProductMovementRepo)(nil)

// RawMaterialMovementRepo ledger de materia prima sobre PostgreSQL.
// Append-only: solo INSERT y SELECT.
type RawMaterialMovementRepo struct {
	q Querier
}

// NewRawMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialMovementRepository(q Querier) *RawMaterialMovementRepo {
	return &RawMaterialMovementRepo{q: q}
}

// Create persiste un movimiento de materia prima.
func (r *RawMaterialMovementRepo) Create(movement *entity.RawMaterialMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO raw_material_movements (id, raw_material_id, type, quantity, production_order_id, motive, observation, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	poID := (*string)(nil)
	if movement.ProductionOrderID != "" {
		poID = &movement.ProductionOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.RawMaterialID, movement.Type, movement.Quantity,
		poID, movement.Motive, movement.Observation, movement.Date,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create raw material movement: %w", err)
	}
	return nil
}

const rawMovementColumns = `id, raw_material_id, type, quantity, production_order_id, motive, observation, date, created_at, created_by`

func scanRawMovements(rows pgx.Rows) ([]*entity.RawMaterialMovement, error) {
	defer rows.Close()
	var movements []*entity.RawMaterialMovement
	for rows.Next() {
		var m entity.RawMaterialMovement
		var poID *string
		if err := rows.Scan(
			&m.ID, &m.RawMaterialID, &m.Type, &m.Quantity, &poID,
			&m.Motive, &m.Observation, &m.Date, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan raw material movement: %w", err)
		}
		if poID != nil {
			m.ProductionOrderID = *poID
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ListByMaterial devuelve los movimientos de una materia prima, con filtro
// opcional de fechas, más recientes primero.
func (r *RawMaterialMovementRepo) ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	query := `
		SELECT ` + rawMovementColumns + ` FROM raw_material_movements
		WHERE raw_material_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, materialID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw material movements: %w", err)
	}
	return scanRawMovements(rows)
}

// ListByProductionOrder devuelve los consumos generados por una orden de producción.
func (r *RawMaterialMovementRepo) ListByProductionOrder(productionOrderID string) ([]*entity.RawMaterialMovement, error) {
	query := `
		SELECT ` + rawMovementColumns + ` FROM raw_material_movements
		WHERE production_order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productionOrderID)
	if err != nil {
		return nil, fmt.Errorf("list movements by production order: %w", err)
	}
	return scanRawMovements(rows)
}

// ProductMovementRepo ledger de producto terminado sobre PostgreSQL.
// Append-only: solo INSERT y SELECT.
type ProductMovementRepo struct {
	q Querier
}

// NewProductMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductMovementRepository(q Querier) *ProductMovementRepo {
	return &ProductMovementRepo{q: q}
}

// Create persiste un movimiento de producto terminado.
func (r *ProductMovementRepo) Create(movement *entity.ProductMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_movements (id, product_id, type, quantity, production_order_id, motive, observation, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	poID := (*string)(nil)
	if movement.ProductionOrderID != "" {
		poID = &movement.ProductionOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		poID, movement.Motive, movement.Observation, movement.Date,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create product movement: %w", err)
	}
	return nil
}

const productMovementColumns = `id, product_id, type, quantity, production_order_id, motive, observation, date, created_at, created_by`

func scanProductMovements(rows pgx.Rows) ([]*entity.ProductMovement, error) {
	defer rows.Close()
	var movements []*entity.ProductMovement
	for rows.Next() {
		var m entity.ProductMovement
		var poID *string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &poID,
			&m.Motive, &m.Observation, &m.Date, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan product movement: %w", err)
		}
		if poID != nil {
			m.ProductionOrderID = *poID
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ListByProduct devuelve los movimientos de un producto, con filtro opcional
// de fechas, más recientes primero.
func (r *ProductMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductMovement, error) {
	query := `
		SELECT ` + productMovementColumns + ` FROM product_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	return scanProductMovements(rows)
}

// ListByProductionOrder devuelve las altas generadas por una orden de producción.
func (r *ProductMovementRepo) ListByProductionOrder(productionOrderID string) ([]*entity.ProductMovement, error) {
	query := `
		SELECT ` + productMovementColumns + ` FROM product_movements
		WHERE production_order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productionOrderID)
	if err != nil {
		return nil, fmt.Errorf("list product movements by production order: %w", err)
	}
	return scanProductMovements(rows)
}
