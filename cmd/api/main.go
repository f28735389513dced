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

	"github.com/jhoicas/fieldops-api/internal/application/auth"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/application/sales"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/fieldops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fieldops-api/internal/interfaces/http"
	"github.com/jhoicas/fieldops-api/pkg/config"
	"github.com/jhoicas/fieldops-api/pkg/logger"
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

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	packRepo := postgres.NewPackSizeRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	outletRepo := postgres.NewOutletRepository(pool)
	priceRepo := postgres.NewPriceListRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	allocRepo := postgres.NewAllocationRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	adjustRepo := postgres.NewAdjustmentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	promoRepo := postgres.NewPromoCodeRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, packRepo)
	marketUC := usecase.NewMarketUseCase(marketRepo, outletRepo)
	pricingUC := pricing.NewUseCase(priceRepo, packRepo, marketRepo)

	ledgerUC := stock.NewLedgerUseCase(txRunner, userRepo, packRepo, marketRepo, ledgerRepo, balanceRepo)

	// PDF: vale de entrega imprimible de la asignación (firma física en campo)
	slipPDF := infrapdf.NewMarotoSlipGenerator()
	opsUC := stock.NewOpsUseCase(
		txRunner, ledgerUC,
		userRepo, productRepo, packRepo, marketRepo,
		allocRepo, transferRepo, returnRepo, adjustRepo,
		slipPDF,
	)

	salesUC := sales.NewUseCase(
		txRunner, pricingUC, ledgerUC,
		userRepo, packRepo, marketRepo,
		saleRepo, paymentRepo, promoRepo,
	)
	visitUC := usecase.NewVisitUseCase(visitRepo, marketRepo, outletRepo)
	campaignUC := usecase.NewCampaignUseCase(campaignRepo, promoRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo, ledgerUC, loc)

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
		Title:    "FieldOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		MarketUC:    marketUC,
		PricingUC:   pricingUC,
		LedgerUC:    ledgerUC,
		OpsUC:       opsUC,
		SalesUC:     salesUC,
		VisitUC:     visitUC,
		CampaignUC:  campaignUC,
		DashboardUC: dashboardUC,
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
