package production

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// InsufficientStockError lleva el detalle de los faltantes para que el caller
// pueda presentarlos. Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
type InsufficientStockError struct {
	Shortfalls []dto.ShortfallDTO
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%v (%d materias primas)", domain.ErrInsufficientStock, len(e.Shortfalls))
}

func (e *InsufficientStockError) Unwrap() error {
	return domain.ErrInsufficientStock
}

// lockAndVerifyMaterials bloquea las filas de materia prima (SELECT FOR UPDATE)
// y re-verifica el stock dentro de la misma transacción que va a consumir.
// Cierra la ventana verificar/consumir: el stock pudo cambiar desde la
// verificación original y la re-comprobación debe sostener los locks hasta
// el commit. Devuelve las entidades bloqueadas indexadas por id.
func lockAndVerifyMaterials(
	repos Repos,
	totals map[string]decimal.Decimal,
	provenance map[string][]string,
) (map[string]*entity.RawMaterial, error) {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	// Orden estable de bloqueo para evitar deadlocks entre finalizaciones concurrentes.
	sort.Strings(ids)

	locked := make(map[string]*entity.RawMaterial, len(ids))
	var shortfalls []dto.ShortfallDTO
	for _, id := range ids {
		material, err := repos.RawMaterials.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		locked[id] = material
		if material.StockActual.LessThan(totals[id]) {
			shortfalls = append(shortfalls, dto.ShortfallDTO{
				RawMaterialID: material.ID,
				Name:          material.Name,
				Required:      totals[id],
				Available:     material.StockActual,
				Missing:       totals[id].Sub(material.StockActual),
				Reason:        dto.ShortfallReasonStock,
				Products:      provenance[id],
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, &InsufficientStockError{Shortfalls: shortfalls}
	}
	return locked, nil
}

// consumeRawMaterials descuenta el stock de las materias bloqueadas y registra
// un movimiento SALIDA por cada una, referenciando la orden de producción.
// Debe ejecutarse dentro de la transacción que hizo lockAndVerifyMaterials.
func consumeRawMaterials(
	repos Repos,
	locked map[string]*entity.RawMaterial,
	totals map[string]decimal.Decimal,
	productionOrderID, userID string,
	now time.Time,
) (int, error) {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	count := 0
	for _, id := range ids {
		material := locked[id]
		quantity := totals[id]
		// Defensa en profundidad: la fila está bloqueada, pero el invariante
		// se vuelve a comprobar antes de mutar.
		if material.StockActual.LessThan(quantity) {
			return 0, &InsufficientStockError{Shortfalls: []dto.ShortfallDTO{{
				RawMaterialID: material.ID,
				Name:          material.Name,
				Required:      quantity,
				Available:     material.StockActual,
				Missing:       quantity.Sub(material.StockActual),
				Reason:        dto.ShortfallReasonStock,
			}}}
		}
		material.StockActual = material.StockActual.Sub(quantity)
		if err := repos.RawMaterials.UpdateStock(material.ID, material.StockActual); err != nil {
			return 0, err
		}
		mov := &entity.RawMaterialMovement{
			RawMaterialID:     material.ID,
			Type:              entity.MovementTypeSalida,
			Quantity:          quantity.Neg(),
			ProductionOrderID: productionOrderID,
			Motive:            "CONSUMO_PRODUCCION",
			Date:              now,
			CreatedAt:         now,
			CreatedBy:         userID,
		}
		if err := repos.MaterialMovs.Create(mov); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// produceGoods incrementa el stock de producto terminado y registra un
// movimiento ENTRADA por cada línea producida, referenciando la orden de
// producción y el pedido de origen en la observación.
func produceGoods(
	repos Repos,
	lines []FinalizeItem,
	productionOrderID, orderID, userID string,
	now time.Time,
) (int, error) {
	count := 0
	for _, line := range lines {
		product, err := repos.Products.GetForUpdate(line.ProductID)
		if err != nil {
			return 0, err
		}
		if product == nil {
			return 0, domain.ErrNotFound
		}
		product.StockActual = product.StockActual.Add(line.Quantity)
		if err := repos.Products.UpdateStock(product.ID, product.StockActual); err != nil {
			return 0, err
		}
		mov := &entity.ProductMovement{
			ProductID:         product.ID,
			Type:              entity.MovementTypeEntrada,
			Quantity:          line.Quantity,
			ProductionOrderID: productionOrderID,
			Motive:            "ALTA_PRODUCCION",
			Observation:       "pedido " + orderID,
			Date:              now,
			CreatedAt:         now,
			CreatedBy:         userID,
		}
		if err := repos.ProductMovs.Create(mov); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
