package production

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/production"
	"github.com/lizmareco/distrisoft-sub002/pkg/logger"
)

// FinalizeMode indica si se finaliza el pedido completo o solo algunos ítems.
type FinalizeMode string

const (
	ModeFull    FinalizeMode = "FULL"
	ModePartial FinalizeMode = "PARTIAL"
)

// FinalizeItem es un ítem producido en una finalización parcial.
type FinalizeItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// FinalizeProductionUseCase cierra una orden de producción: recalcula las
// necesidades, re-verifica el stock bajo locks de fila, consume materia prima,
// da de alta producto terminado y transiciona los estados, todo en una sola
// transacción. La finalización no es idempotente: un segundo intento choca
// con el guard de estado terminal.
type FinalizeProductionUseCase struct {
	txRunner TxRunner
	policy   FormulaPolicy
	audit    AuditLog
	log      *logger.Logger
}

// NewFinalizeProductionUseCase construye el caso de uso.
func NewFinalizeProductionUseCase(txRunner TxRunner, policy FormulaPolicy, audit AuditLog, log *logger.Logger) *FinalizeProductionUseCase {
	return &FinalizeProductionUseCase{txRunner: txRunner, policy: policy, audit: audit, log: log}
}

// Finalize ejecuta la finalización en modo FULL (todas las líneas del pedido)
// o PARTIAL (solo los ítems indicados, estado final PARCIALMENTE_COMPLETADA).
func (uc *FinalizeProductionUseCase) Finalize(
	ctx context.Context,
	productionOrderID string,
	mode FinalizeMode,
	items []FinalizeItem,
	userID string,
) (*dto.FinalizeProductionResponse, error) {
	switch mode {
	case ModeFull:
		if len(items) != 0 {
			return nil, domain.ErrInvalidInput
		}
	case ModePartial:
		if len(items) == 0 {
			return nil, domain.ErrInvalidInput
		}
		for _, item := range items {
			if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if productionOrderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.FinalizeProductionResponse
	var previousStatus entity.ProductionOrderStatus

	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		// Guard de doble finalización: se comprueba con la fila bloqueada y
		// antes de cualquier mutación.
		po, err := repos.ProductionOrders.GetForUpdate(productionOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status.Terminal() {
			return domain.ErrAlreadyFinalized
		}
		previousStatus = po.Status

		target := entity.ProductionStatusCompleted
		if mode == ModePartial {
			target = entity.ProductionStatusPartiallyCompleted
		}
		// La transición se valida antes de consumir nada (check-then-act).
		if !po.Status.CanTransitionTo(target) {
			return domain.ErrConflict
		}

		order, err := repos.Orders.GetByID(po.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		produceLines, err := resolveProduceLines(order, mode, items)
		if err != nil {
			return err
		}

		// Recalcular necesidades con los repos de la transacción. Llegar acá
		// sin fórmula es terminal: no se puede consumir contra una receta
		// inexistente.
		totals := make(map[string]decimal.Decimal)
		provenance := make(map[string][]string)
		for _, line := range produceLines {
			product, err := repos.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			formula, err := ResolveFormula(repos.Formulas, line.ProductID, uc.policy)
			if err != nil {
				return err
			}
			req, err := production.ComputeRequirement(product, formula, line.Quantity)
			if err != nil {
				return err
			}
			for _, mat := range req.Materials {
				totals[mat.RawMaterialID] = totals[mat.RawMaterialID].Add(mat.Quantity)
				provenance[mat.RawMaterialID] = append(provenance[mat.RawMaterialID], product.ID)
			}
		}

		// Re-verificación bajo SELECT FOR UPDATE: cierra la ventana entre la
		// verificación original y el consumo.
		locked, err := lockAndVerifyMaterials(repos, totals, provenance)
		if err != nil {
			return err
		}

		now := time.Now()
		consumed, err := consumeRawMaterials(repos, locked, totals, po.ID, userID, now)
		if err != nil {
			return err
		}
		produced, err := produceGoods(repos, produceLines, po.ID, order.ID, userID, now)
		if err != nil {
			return err
		}

		if err := po.Transition(target, now); err != nil {
			return err
		}
		if err := repos.ProductionOrders.Update(po); err != nil {
			return err
		}

		orderStatus := order.Status
		if mode == ModeFull {
			orderStatus = entity.OrderStatusReadyForDelivery
			if err := repos.Orders.UpdateStatus(order.ID, orderStatus); err != nil {
				return err
			}
		}

		resp = &dto.FinalizeProductionResponse{
			ProductionOrderID: po.ID,
			PreviousStatus:    previousStatus.String(),
			NewStatus:         po.Status.String(),
			OrderStatus:       orderStatus,
			MaterialsConsumed: consumed,
			ProductsProduced:  produced,
			EndDate:           po.EndDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.appendAudit(productionOrderID, userID, resp)
	return resp, nil
}

// resolveProduceLines determina qué se produce: en FULL todas las líneas del
// pedido; en PARTIAL los ítems indicados, que deben pertenecer al pedido y no
// exceder la cantidad pedida.
func resolveProduceLines(order *entity.CustomerOrder, mode FinalizeMode, items []FinalizeItem) ([]FinalizeItem, error) {
	if mode == ModeFull {
		lines := make([]FinalizeItem, 0, len(order.Lines))
		for _, line := range order.Lines {
			lines = append(lines, FinalizeItem{ProductID: line.ProductID, Quantity: line.Quantity})
		}
		return lines, nil
	}

	ordered := make(map[string]decimal.Decimal, len(order.Lines))
	for _, line := range order.Lines {
		ordered[line.ProductID] = ordered[line.ProductID].Add(line.Quantity)
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		max, ok := ordered[item.ProductID]
		if !ok || seen[item.ProductID] || item.Quantity.GreaterThan(max) {
			return nil, domain.ErrInvalidInput
		}
		seen[item.ProductID] = true
	}
	return items, nil
}

// appendAudit registra la finalización (estado previo y nuevo) después del
// commit; un fallo de auditoría se loguea y se descarta.
func (uc *FinalizeProductionUseCase) appendAudit(productionOrderID, userID string, resp *dto.FinalizeProductionResponse) {
	before, _ := json.Marshal(map[string]string{"status": resp.PreviousStatus})
	after, _ := json.Marshal(map[string]interface{}{
		"status":             resp.NewStatus,
		"order_status":       resp.OrderStatus,
		"materials_consumed": resp.MaterialsConsumed,
		"products_produced":  resp.ProductsProduced,
	})
	err := uc.audit.Append(&entity.AuditRecord{
		Entity:   "production_orders",
		RecordID: productionOrderID,
		Action:   "FIN_PRODUCCION",
		Before:   string(before),
		After:    string(after),
		UserID:   userID,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("production_order_id", productionOrderID).Msg("no se pudo auditar la finalización de producción")
	}
}
