package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	RawMaterialUC *usecase.RawMaterialUseCase
	FormulaUC     *usecase.FormulaUseCase
	OrderUC       *usecase.OrderUseCase
	VerifyStock   *production.VerifyStockUseCase
	StartProd     *production.StartProductionUseCase
	FinalizeProd  *production.FinalizeProductionUseCase
	Auth          AuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token; modo dev permite usuario por defecto)
	protected := api.Group("/", AuthMiddleware(deps.Auth))

	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.RawMaterialUC, deps.FormulaUC, deps.OrderUC)
	productionHandler := NewProductionHandler(deps.VerifyStock, deps.StartProd, deps.FinalizeProd)

	// Products (protegido)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Delete("/:id", catalogHandler.DeleteProduct)
	products.Get("/:id/movements", catalogHandler.ListProductMovements)
	products.Get("/:id/formulas", catalogHandler.ListFormulasByProduct)

	// Raw materials (protegido)
	materials := protected.Group("/raw-materials")
	materials.Post("/", catalogHandler.CreateRawMaterial)
	materials.Get("/", catalogHandler.ListRawMaterials)
	materials.Get("/:id", catalogHandler.GetRawMaterial)
	materials.Post("/:id/restock", catalogHandler.RestockRawMaterial)
	materials.Patch("/:id/status", catalogHandler.SetRawMaterialStatus)
	materials.Get("/:id/movements", catalogHandler.ListRawMaterialMovements)

	// Formulas (protegido)
	formulas := protected.Group("/formulas")
	formulas.Post("/", catalogHandler.CreateFormula)

	// Orders y ciclo de producción (protegido)
	orders := protected.Group("/orders")
	orders.Post("/", catalogHandler.CreateOrder)
	orders.Get("/", catalogHandler.ListOrders)
	orders.Get("/:id", catalogHandler.GetOrder)
	orders.Get("/:id/stock-verification", productionHandler.VerifyStock)
	orders.Post("/:id/production", productionHandler.StartProduction)

	// Production orders (protegido)
	prodOrders := protected.Group("/production-orders")
	prodOrders.Post("/:id/start", productionHandler.BeginProduction)
	prodOrders.Post("/:id/finalize", productionHandler.FinalizeProduction)
}
