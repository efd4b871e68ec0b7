package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/application/usecase"
	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

// CatalogHandler maneja las peticiones HTTP del catálogo de soporte:
// productos, materias primas, fórmulas y pedidos (protegido).
type CatalogHandler struct {
	products  *usecase.ProductUseCase
	materials *usecase.RawMaterialUseCase
	formulas  *usecase.FormulaUseCase
	orders    *usecase.OrderUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(
	products *usecase.ProductUseCase,
	materials *usecase.RawMaterialUseCase,
	formulas *usecase.FormulaUseCase,
	orders *usecase.OrderUseCase,
) *CatalogHandler {
	return &CatalogHandler{products: products, materials: materials, formulas: formulas, orders: orders}
}

func mapCatalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "estado del recurso no permite la operación"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// pageParams extrae limit/offset del query string con los defaults de listado.
func pageParams(c *fiber.Ctx) (int, int) {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page.Limit, page.Offset
}

// dateRangeParams extrae from/to (RFC 3339) del query string; ausentes quedan nulos.
func dateRangeParams(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

// CreateProduct POST /api/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.products.Create(in)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// GetProduct GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.products.GetByID(c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// ListProducts GET /api/products
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.products.List(limit, offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// DeleteProduct DELETE /api/products/:id (baja lógica)
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Params("id")); err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado"})
}

// ListProductMovements GET /api/products/:id/movements
func (h *CatalogHandler) ListProductMovements(c *fiber.Ctx) error {
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	limit, offset := pageParams(c)
	movs, err := h.products.Movements(c.Params("id"), from, to, limit, offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toProductMovementResponse(m))
	}
	return c.JSON(out)
}

// CreateRawMaterial POST /api/raw-materials
func (h *CatalogHandler) CreateRawMaterial(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.materials.Create(c.Context(), userID, in)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRawMaterialResponse(m))
}

// GetRawMaterial GET /api/raw-materials/:id
func (h *CatalogHandler) GetRawMaterial(c *fiber.Ctx) error {
	m, err := h.materials.GetByID(c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toRawMaterialResponse(m))
}

// ListRawMaterials GET /api/raw-materials
func (h *CatalogHandler) ListRawMaterials(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.materials.List(limit, offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toRawMaterialResponse(m))
	}
	return c.JSON(out)
}

// RestockRawMaterial POST /api/raw-materials/:id/restock
// Registra una ENTRADA y sube el stock en una sola transacción.
func (h *CatalogHandler) RestockRawMaterial(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.materials.Restock(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toRawMaterialResponse(m))
}

// SetRawMaterialStatus PATCH /api/raw-materials/:id/status
func (h *CatalogHandler) SetRawMaterialStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.materials.SetStatus(c.Params("id"), in.Status); err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// ListRawMaterialMovements GET /api/raw-materials/:id/movements
func (h *CatalogHandler) ListRawMaterialMovements(c *fiber.Ctx) error {
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	limit, offset := pageParams(c)
	movs, err := h.materials.Movements(c.Params("id"), from, to, limit, offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toRawMovementResponse(m))
	}
	return c.JSON(out)
}

// CreateFormula POST /api/formulas
func (h *CatalogHandler) CreateFormula(c *fiber.Ctx) error {
	var in dto.CreateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.formulas.Create(in)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFormulaResponse(f))
}

// ListFormulasByProduct GET /api/products/:id/formulas
func (h *CatalogHandler) ListFormulasByProduct(c *fiber.Ctx) error {
	list, err := h.formulas.ListByProduct(c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.FormulaResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFormulaResponse(f))
	}
	return c.JSON(out)
}

// CreateOrder POST /api/orders
func (h *CatalogHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.orders.Create(in)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o))
}

// GetOrder GET /api/orders/:id
func (h *CatalogHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.orders.GetByID(c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// ListOrders GET /api/orders
func (h *CatalogHandler) ListOrders(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.orders.List(limit, offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

func toFormulaResponse(f *entity.Formula) dto.FormulaResponse {
	lines := make([]dto.FormulaLineResponse, 0, len(f.Lines))
	for _, l := range f.Lines {
		lines = append(lines, dto.FormulaLineResponse{
			RawMaterialID:  l.RawMaterialID,
			QuantityPerLot: l.QuantityPerLot,
			UnitMeasure:    l.UnitMeasure,
		})
	}
	return dto.FormulaResponse{
		ID:        f.ID,
		ProductID: f.ProductID,
		Name:      f.Name,
		Yield:     f.Yield,
		Lines:     lines,
		CreatedAt: f.CreatedAt,
	}
}

func toOrderResponse(o *entity.CustomerOrder) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status,
		Lines:     lines,
		CreatedAt: o.CreatedAt,
	}
}
