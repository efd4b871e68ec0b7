package production

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/pkg/logger"
)

// StartProductionUseCase crea la orden de producción de un pedido: verifica
// stock, crea la orden en PENDIENTE y pasa el pedido a EN_PRODUCCION, todo
// en una transacción. Sin stock suficiente no se crea nada.
type StartProductionUseCase struct {
	txRunner TxRunner
	verifier *VerifyStockUseCase
	policy   FormulaPolicy
	audit    AuditLog
	log      *logger.Logger
}

// NewStartProductionUseCase construye el caso de uso.
func NewStartProductionUseCase(
	txRunner TxRunner,
	verifier *VerifyStockUseCase,
	policy FormulaPolicy,
	audit AuditLog,
	log *logger.Logger,
) *StartProductionUseCase {
	return &StartProductionUseCase{
		txRunner: txRunner,
		verifier: verifier,
		policy:   policy,
		audit:    audit,
		log:      log,
	}
}

// Start verifica el stock del pedido y, si alcanza, crea la orden de producción.
func (uc *StartProductionUseCase) Start(ctx context.Context, orderID, operatorID, userID string) (*entity.ProductionOrder, error) {
	if orderID == "" || operatorID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Verificación previa (solo lectura). La re-comprobación definitiva ocurre
	// al finalizar, dentro de la transacción que consume.
	report, err := uc.verifier.Verify(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if !report.Sufficient {
		return nil, &InsufficientStockError{Shortfalls: report.Shortfalls}
	}

	now := time.Now()
	po := &entity.ProductionOrder{
		ID:         uuid.New().String(),
		OrderID:    orderID,
		OperatorID: operatorID,
		Status:     entity.ProductionStatusPending,
		StartDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		order, err := repos.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		// A lo sumo una orden de producción no terminal por pedido.
		active, err := repos.ProductionOrders.FindActiveByOrder(orderID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrProductionExists
		}
		if err := repos.ProductionOrders.Create(po); err != nil {
			return err
		}
		return repos.Orders.UpdateStatus(orderID, entity.OrderStatusInProduction)
	})
	if err != nil {
		return nil, err
	}

	uc.appendAudit(po, userID)
	return po, nil
}

func (uc *StartProductionUseCase) appendAudit(po *entity.ProductionOrder, userID string) {
	after, _ := json.Marshal(map[string]interface{}{
		"order_id": po.OrderID,
		"status":   po.Status.String(),
		"operator": po.OperatorID,
	})
	err := uc.audit.Append(&entity.AuditRecord{
		Entity:   "production_orders",
		RecordID: po.ID,
		Action:   "INICIO_PRODUCCION",
		After:    string(after),
		UserID:   userID,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("production_order_id", po.ID).Msg("no se pudo auditar el inicio de producción")
	}
}

// Begin pasa la orden de PENDIENTE a EN_PROCESO (el operario comienza a fabricar).
func (uc *StartProductionUseCase) Begin(ctx context.Context, productionOrderID, userID string) (*entity.ProductionOrder, error) {
	if productionOrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	var po *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		po, err = repos.ProductionOrders.GetForUpdate(productionOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if err := po.Transition(entity.ProductionStatusInProgress, time.Now()); err != nil {
			return err
		}
		return repos.ProductionOrders.Update(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}
