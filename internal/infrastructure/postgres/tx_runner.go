package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los SELECT FOR UPDATE de esos repos sostienen sus locks
// hasta el cierre de la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(repos production.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := production.Repos{
		Products:         NewProductRepository(tx),
		RawMaterials:     NewRawMaterialRepository(tx),
		Formulas:         NewFormulaRepository(tx),
		Orders:           NewOrderRepository(tx),
		ProductionOrders: NewProductionOrderRepository(tx),
		MaterialMovs:     NewRawMaterialMovementRepository(tx),
		ProductMovs:      NewProductMovementRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
