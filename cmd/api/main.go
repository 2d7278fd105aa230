package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmarte/equimed-api/internal/application/analytics"
	"github.com/jmarte/equimed-api/internal/application/auth"
	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/application/quotations"
	"github.com/jmarte/equimed-api/internal/application/rentals"
	"github.com/jmarte/equimed-api/internal/application/sales"
	"github.com/jmarte/equimed-api/internal/application/usecase"
	"github.com/jmarte/equimed-api/internal/infrastructure/cache"
	"github.com/jmarte/equimed-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmarte/equimed-api/internal/interfaces/http"
	"github.com/jmarte/equimed-api/pkg/config"
	"github.com/jmarte/equimed-api/pkg/logger"
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

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	failureRepo := postgres.NewFailureRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewStockLedger()
	numbers := numbering.NewGenerator()

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, ledger, movementRepo)
	salesUC := sales.NewUseCase(txRunner, ledger, numbers, saleRepo, clientRepo)
	rentalsUC := rentals.NewUseCase(txRunner, ledger, numbers, rentalRepo, clientRepo)
	quotationsUC := quotations.NewUseCase(txRunner, numbers, quotationRepo, clientRepo, productRepo, salesUC, rentalsUC)

	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	failureUC := usecase.NewFailureUseCase(failureRepo)

	// Cache de agregados del dashboard. REDIS_ADDR vacío lo deshabilita.
	var statsCache ports.StatsCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisStatsCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, dashboard sin cache")
		} else {
			statsCache = redisCache
			defer redisCache.Close()
		}
	}
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, statsCache, log.Zerolog())

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrganizationUC:   orgUC,
		ProductUC:        productUC,
		ClientUC:         clientUC,
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		FailureUC:        failureUC,
		RegisterMovement: registerMovementUC,
		QuotationUC:      quotationsUC,
		SaleUC:           salesUC,
		RentalUC:         rentalsUC,
		DashboardUC:      dashboardUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
