package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/mistock-api/internal/application/analytics"
	"github.com/jhoicas/mistock-api/internal/application/auth"
	"github.com/jhoicas/mistock-api/internal/application/ledger"
	"github.com/jhoicas/mistock-api/internal/application/restock"
	"github.com/jhoicas/mistock-api/internal/application/sales"
	"github.com/jhoicas/mistock-api/internal/application/usecase"
	"github.com/jhoicas/mistock-api/internal/infrastructure/notification"
	"github.com/jhoicas/mistock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mistock-api/internal/interfaces/http"
	"github.com/jhoicas/mistock-api/pkg/config"
	"github.com/jhoicas/mistock-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewProductSaleRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := notification.NewMailer(cfg.SMTP, log)
	mailer.Start()
	defer mailer.Close()

	writer := ledger.NewWriter()
	movementUC := ledger.NewMovementUseCase(txRunner, writer, movementRepo, productRepo)
	saleUC := sales.NewSaleUseCase(txRunner, writer, saleRepo, productRepo)
	orderUC := restock.NewPurchaseOrderUseCase(txRunner, writer, orderRepo, productRepo, userRepo, mailer)
	analyticsUC := appanalytics.NewAnalyticsUseCase(analyticsRepo)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo, saleRepo, categoryRepo, supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MiStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		MovementUC:  movementUC,
		SaleUC:      saleUC,
		OrderUC:     orderUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
