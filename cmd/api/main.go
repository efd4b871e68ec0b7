package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/application/usecase"
	"github.com/lizmareco/distrisoft-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/lizmareco/distrisoft-sub002/internal/interfaces/http"
	"github.com/lizmareco/distrisoft-sub002/pkg/config"
	"github.com/lizmareco/distrisoft-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	formulaPolicy, err := production.ParseFormulaPolicy(cfg.Production.FormulaPolicy)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Production.FormulaPolicy).Msg("política de fórmulas inválida")
	}

	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productMovRepo := postgres.NewProductMovementRepository(pool)
	materialMovRepo := postgres.NewRawMaterialMovementRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	verifyStockUC := production.NewVerifyStockUseCase(
		orderRepo, productRepo, materialRepo, formulaRepo,
		formulaPolicy, auditRepo, log,
	)
	startProdUC := production.NewStartProductionUseCase(txRunner, verifyStockUC, formulaPolicy, auditRepo, log)
	finalizeProdUC := production.NewFinalizeProductionUseCase(txRunner, formulaPolicy, auditRepo, log)

	productUC := usecase.NewProductUseCase(productRepo, productMovRepo)
	rawMaterialUC := usecase.NewRawMaterialUseCase(materialRepo, materialMovRepo, txRunner)
	formulaUC := usecase.NewFormulaUseCase(formulaRepo, productRepo, materialRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		RawMaterialUC: rawMaterialUC,
		FormulaUC:     formulaUC,
		OrderUC:       orderUC,
		VerifyStock:   verifyStockUC,
		StartProd:     startProdUC,
		FinalizeProd:  finalizeProdUC,
		Auth: httpRouter.AuthConfig{
			JWTSecret: cfg.JWT.Secret,
			Env:       cfg.App.Env,
			DevUserID: cfg.Production.DevUserID,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}
