package production

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
	"github.com/lizmareco/distrisoft-sub002/pkg/logger"
)

// VerifyStockUseCase verifica si el stock de materia prima alcanza para
// fabricar todas las líneas de un pedido. Operación de solo lectura:
// puede invocarse cuantas veces se quiera antes de iniciar producción.
type VerifyStockUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	materialRepo repository.RawMaterialRepository
	formulaRepo  repository.FormulaRepository
	policy       FormulaPolicy
	audit        AuditLog
	log          *logger.Logger
}

// NewVerifyStockUseCase construye el caso de uso.
func NewVerifyStockUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.RawMaterialRepository,
	formulaRepo repository.FormulaRepository,
	policy FormulaPolicy,
	audit AuditLog,
	log *logger.Logger,
) *VerifyStockUseCase {
	return &VerifyStockUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		formulaRepo:  formulaRepo,
		policy:       policy,
		audit:        audit,
		log:          log,
	}
}

// lineExpansion acumula el resultado de expandir las líneas de un pedido.
type lineExpansion struct {
	lines      []dto.LineRequirementDTO
	reqs       []*production.Requirement
	provenance map[string][]string // materia prima -> productos que la requieren
	noRecipe   []string            // productos sin fórmula definida
}

// expandOrderLines convierte cada línea del pedido en necesidades de materia
// prima. Una línea sin fórmula no aborta la expansión de las demás: se marca
// y el verificador la reporta como faltante.
func expandOrderLines(
	products repository.ProductRepository,
	formulas repository.FormulaRepository,
	policy FormulaPolicy,
	lines []entity.OrderLine,
) (*lineExpansion, error) {
	exp := &lineExpansion{provenance: make(map[string][]string)}
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}

		formula, err := ResolveFormula(formulas, line.ProductID, policy)
		if err != nil {
			if errors.Is(err, domain.ErrNoRecipeDefined) {
				exp.noRecipe = append(exp.noRecipe, product.ID)
				exp.lines = append(exp.lines, dto.LineRequirementDTO{
					ProductID:     product.ID,
					ProductName:   product.Name,
					Quantity:      line.Quantity,
					MissingRecipe: true,
				})
				continue
			}
			return nil, err
		}

		req, err := production.ComputeRequirement(product, formula, line.Quantity)
		if err != nil {
			return nil, err
		}
		exp.reqs = append(exp.reqs, req)

		lineDTO := dto.LineRequirementDTO{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			TotalMass:   req.TotalMass,
			Lots:        req.Lots,
		}
		for _, mat := range req.Materials {
			lineDTO.Materials = append(lineDTO.Materials, dto.MaterialRequirementDTO{
				RawMaterialID: mat.RawMaterialID,
				Quantity:      mat.Quantity,
				UnitMeasure:   mat.UnitMeasure,
			})
			exp.provenance[mat.RawMaterialID] = append(exp.provenance[mat.RawMaterialID], product.ID)
		}
		exp.lines = append(exp.lines, lineDTO)
	}
	return exp, nil
}

// Verify expande todas las líneas del pedido, acumula las necesidades por
// materia prima y las compara contra el stock actual. Los faltantes de
// distintas líneas sobre la misma materia se suman antes de comparar.
func (uc *VerifyStockUseCase) Verify(ctx context.Context, orderID, userID string) (*dto.StockVerificationResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	exp, err := expandOrderLines(uc.productRepo, uc.formulaRepo, uc.policy, order.Lines)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockVerificationResponse{OrderID: orderID, Lines: exp.lines}

	// Un producto sin fórmula marca el pedido como no fabricable pero no
	// impide verificar el resto de las líneas.
	for _, productID := range exp.noRecipe {
		resp.Shortfalls = append(resp.Shortfalls, dto.ShortfallDTO{
			Reason:   dto.ShortfallReasonNoRecipe,
			Products: []string{productID},
		})
	}

	totals := production.AggregateMaterials(exp.reqs)
	materialIDs := make([]string, 0, len(totals))
	for id := range totals {
		materialIDs = append(materialIDs, id)
	}
	sort.Strings(materialIDs)

	for _, materialID := range materialIDs {
		required := totals[materialID]
		material, err := uc.materialRepo.GetByID(materialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		if material.StockActual.LessThan(required) {
			resp.Shortfalls = append(resp.Shortfalls, dto.ShortfallDTO{
				RawMaterialID: material.ID,
				Name:          material.Name,
				Required:      required,
				Available:     material.StockActual,
				Missing:       required.Sub(material.StockActual),
				Reason:        dto.ShortfallReasonStock,
				Products:      exp.provenance[materialID],
			})
		}
	}

	resp.Sufficient = len(resp.Shortfalls) == 0

	uc.appendAudit(order.ID, userID, resp)
	return resp, nil
}

// appendAudit registra la verificación en el log de auditoría; un fallo se
// loguea y se descarta.
func (uc *VerifyStockUseCase) appendAudit(orderID, userID string, resp *dto.StockVerificationResponse) {
	after, _ := json.Marshal(map[string]interface{}{
		"sufficient": resp.Sufficient,
		"shortfalls": len(resp.Shortfalls),
	})
	err := uc.audit.Append(&entity.AuditRecord{
		Entity:   "orders",
		RecordID: orderID,
		Action:   "VERIFICACION_STOCK",
		After:    string(after),
		UserID:   userID,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo auditar la verificación de stock")
	}
}
