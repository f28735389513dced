package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldops-api/internal/application/auth"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/application/sales"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/application/usecase"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	MarketUC    *usecase.MarketUseCase
	PricingUC   *pricing.UseCase
	LedgerUC    *stock.LedgerUseCase
	OpsUC       *stock.OpsUseCase
	SalesUC     *sales.UseCase
	VisitUC     *usecase.VisitUseCase
	CampaignUC  *usecase.CampaignUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	backOffice := RequireRole(entity.RoleAdmin, entity.RoleManager)
	agentOnly := RequireRole(entity.RoleAgent)

	// Auth (login público; register solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Delete("/:id", userHandler.SoftDelete)

	// Products y packs (protegido; escritura back office)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", backOffice, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", backOffice, productHandler.Update)
	products.Post("/:id/packs", backOffice, productHandler.AddPack)
	products.Get("/:id/packs", productHandler.ListPacks)

	// Markets y outlets (protegido)
	markets := protected.Group("/markets")
	marketHandler := NewMarketHandler(deps.MarketUC)
	markets.Post("/", backOffice, marketHandler.Create)
	markets.Get("/", marketHandler.List)
	markets.Get("/:id", marketHandler.GetByID)
	markets.Post("/:id/outlets", backOffice, marketHandler.AddOutlet)
	markets.Get("/:id/outlets", marketHandler.ListOutlets)

	// Prices (lectura para todos los autenticados, escritura back office)
	prices := protected.Group("/prices")
	pricingHandler := NewPricingHandler(deps.PricingUC)
	prices.Post("/", backOffice, pricingHandler.Create)
	prices.Get("/resolve", pricingHandler.Resolve)
	prices.Get("/pack/:pack_id", pricingHandler.ListByPack)
	prices.Delete("/:id", backOffice, pricingHandler.Deactivate)

	// Stock: saldos, libro mayor y operaciones
	stockHandler := NewStockHandler(deps.LedgerUC, deps.OpsUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/balance", stockHandler.GetBalance)
	stockGroup.Get("/ledger", stockHandler.ListLedger)
	stockGroup.Get("/agents/:agent_id", stockHandler.AgentStock)

	allocations := stockGroup.Group("/allocations")
	allocations.Post("/", backOffice, stockHandler.CreateAllocation)
	allocations.Get("/", stockHandler.ListAllocations)
	allocations.Get("/:id/slip", stockHandler.AllocationSlip)

	transfers := stockGroup.Group("/transfers")
	transfers.Post("/", agentOnly, stockHandler.RequestTransfer)
	transfers.Get("/", stockHandler.ListTransfers)
	transfers.Post("/:id/approve", backOffice, stockHandler.ApproveTransfer)
	transfers.Post("/:id/reject", backOffice, stockHandler.RejectTransfer)

	returns := stockGroup.Group("/returns")
	returns.Post("/", agentOnly, stockHandler.FileReturn)
	returns.Get("/", stockHandler.ListReturns)
	returns.Post("/:id/receive", backOffice, stockHandler.ReceiveReturn)
	returns.Post("/:id/reject", backOffice, stockHandler.RejectReturn)

	stockGroup.Post("/adjustments", backOffice, stockHandler.CreateAdjustment)

	// Sales y pagos
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", agentOnly, saleHandler.RecordSale)
	salesGroup.Get("/", saleHandler.ListByAgent)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/payments", saleHandler.AddPayment)
	salesGroup.Get("/:id/payments", saleHandler.ListPayments)
	protected.Patch("/payments/:id", backOffice, saleHandler.UpdatePaymentStatus)

	// Visits (protegido)
	visits := protected.Group("/visits")
	visitHandler := NewVisitHandler(deps.VisitUC)
	visits.Post("/", agentOnly, visitHandler.Log)
	visits.Get("/", visitHandler.ListByAgent)

	// Campaigns y promo codes (back office)
	campaigns := protected.Group("/campaigns")
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	campaigns.Post("/", backOffice, campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Patch("/:id/status", backOffice, campaignHandler.UpdateStatus)
	campaigns.Post("/:id/promo-codes", backOffice, campaignHandler.AddPromoCode)

	// Dashboards
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/agent", dashboardHandler.AgentDashboard)
	dashboard.Get("/admin", backOffice, dashboardHandler.AdminDashboard)
}
