package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionOrderColumns = `id, order_id, operator_id, status, start_date, end_date, created_at, updated_at`

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(po *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, order_id, operator_id, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.OrderID, po.OperatorID, int(po.Status), po.StartDate, po.EndDate,
		po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production order: %w", err)
	}
	return nil
}

func (r *ProductionOrderRepo) scanOne(row pgx.Row) (*entity.ProductionOrder, error) {
	var po entity.ProductionOrder
	var status int
	err := row.Scan(
		&po.ID, &po.OrderID, &po.OperatorID, &status, &po.StartDate, &po.EndDate,
		&po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan production order: %w", err)
	}
	po.Status = entity.ProductionOrderStatus(status)
	return &po, nil
}

// GetByID obtiene una orden de producción por id (nil si no existe).
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE). El guard
// de doble finalización se evalúa con este lock sostenido.
func (r *ProductionOrderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindActiveByOrder devuelve la orden no terminal del pedido, o nil.
func (r *ProductionOrderRepo) FindActiveByOrder(orderID string) (*entity.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + ` FROM production_orders
		WHERE order_id = $1 AND status NOT IN ($2, $3)
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, orderID,
		int(entity.ProductionStatusCompleted), int(entity.ProductionStatusPartiallyCompleted)))
}

// Update persiste estado, fecha de fin y updated_at.
func (r *ProductionOrderRepo) Update(po *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET status = $2, end_date = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, po.ID, int(po.Status), po.EndDate, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update production order: fila inexistente %s", po.ID)
	}
	return nil
}
