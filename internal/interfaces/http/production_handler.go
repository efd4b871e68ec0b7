package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
)

// ProductionHandler maneja las peticiones HTTP del ciclo de producción:
// verificación de stock, inicio, arranque y finalización (protegido).
type ProductionHandler struct {
	verify   *production.VerifyStockUseCase
	start    *production.StartProductionUseCase
	finalize *production.FinalizeProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(
	verify *production.VerifyStockUseCase,
	start *production.StartProductionUseCase,
	finalize *production.FinalizeProductionUseCase,
) *ProductionHandler {
	return &ProductionHandler{verify: verify, start: start, finalize: finalize}
}

// VerifyStock reporta si el stock de materias primas alcanza para un pedido.
// No modifica inventario. GET /api/orders/:id/stock-verification
func (h *ProductionHandler) VerifyStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	orderID := c.Params("id")
	resp, err := h.verify.Verify(c.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// StartProduction crea la orden de producción de un pedido PENDIENTE.
// POST /api/orders/:id/production
func (h *ProductionHandler) StartProduction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	orderID := c.Params("id")
	var in dto.StartProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.start.Start(c.Context(), orderID, in.OperatorID, userID)
	if err != nil {
		var insufficient *production.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "INSUFFICIENT_STOCK",
				Message: "stock insuficiente para iniciar producción",
				Details: insufficient.Shortfalls,
			})
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrNoRecipeDefined):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: "producto sin fórmula definida"})
		case errors.Is(err, domain.ErrProductionExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCTION_EXISTS", Message: "el pedido ya tiene una orden de producción activa"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el pedido no está en estado PENDIENTE"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionOrderResponse(po))
}

// BeginProduction pasa una orden de producción de PENDIENTE a EN_CURSO.
// POST /api/production-orders/:id/start
func (h *ProductionHandler) BeginProduction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	poID := c.Params("id")
	po, err := h.start.Begin(c.Context(), poID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de producción no encontrada"})
		case errors.Is(err, domain.ErrAlreadyFinalized):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FINALIZED", Message: "la orden de producción ya fue finalizada"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "transición de estado no permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toProductionOrderResponse(po))
}

// FinalizeProduction consume materias primas, da de alta productos terminados
// y cierra la orden de producción, todo en una transacción.
// POST /api/production-orders/:id/finalize
func (h *ProductionHandler) FinalizeProduction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	poID := c.Params("id")
	var in dto.FinalizeProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mode := production.FinalizeMode(in.Mode)
	items := make([]production.FinalizeItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, production.FinalizeItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	resp, err := h.finalize.Finalize(c.Context(), poID, mode, items, userID)
	if err != nil {
		var insufficient *production.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "INSUFFICIENT_STOCK",
				Message: "stock insuficiente para finalizar producción",
				Details: insufficient.Shortfalls,
			})
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de producción no encontrada"})
		case errors.Is(err, domain.ErrAlreadyFinalized):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FINALIZED", Message: "la orden de producción ya fue finalizada"})
		case errors.Is(err, domain.ErrNoRecipeDefined):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: "producto sin fórmula definida"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "transición de estado no permitida"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "modo o ítems inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
