package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL
// (usable con pool o tx). Las consultas cargan las líneas del pedido.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus líneas.
func (r *OrderRepo) Create(order *entity.CustomerOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO customer_orders (id, client_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.ClientID, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, line := range order.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, line.ID, order.ID, line.ProductID, line.Quantity); err != nil {
			return fmt.Errorf("create order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas (nil si no existe).
func (r *OrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	query := `
		SELECT id, client_id, status, created_at, updated_at, deleted_at
		FROM customer_orders WHERE id = $1 AND deleted_at IS NULL`
	var o entity.CustomerOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ClientID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) loadLines(o *entity.CustomerOrder) error {
	query := `
		SELECT id, order_id, product_id, quantity
		FROM order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, o.ID)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}

// UpdateStatus avanza el estado del pedido.
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE customer_orders SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve pedidos paginados, más recientes primero, con sus líneas.
func (r *OrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `
		SELECT id, client_id, status, created_at, updated_at, deleted_at
		FROM customer_orders
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.CustomerOrder
	for rows.Next() {
		var o entity.CustomerOrder
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := r.loadLines(o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
