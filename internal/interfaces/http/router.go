package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/auth"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
)

// Roles tal como viajan en el token.
const (
	roleDirector = "director"
	roleManager  = "manager"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TeamUC        *usecase.TeamUseCase
	SaleUC        *usecase.SaleUseCase
	ReportUC      *usecase.ReportUseCase
	FeeUC         *usecase.PaymentFeeUseCase
	N8nUC         *usecase.N8nConfigUseCase
	ProjectionUC  *usecase.ProjectionUseCase
	BoardUC       *analytics.ProjectionBoardUseCase
	SalesDashUC   *analytics.SalesDashboardUseCase
	ReportsDashUC *analytics.ReportsDashboardUseCase
	CommissionUC  *analytics.CommissionUseCase
	ImportUC      *ingest.ImportUseCase
	WebhookUC     *ingest.WebhookUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Webhook del CRM (API key propia, sin JWT)
	webhookHandler := NewWebhookHandler(deps.WebhookUC)
	api.Post("/webhook/sale", webhookHandler.Sale)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	directorOnly := RequireRole(roleDirector)
	managers := RequireRole(roleDirector, roleManager)

	protected.Get("/auth/me", authHandler.Me)

	// Equipo (director)
	team := protected.Group("/team", directorOnly)
	teamHandler := NewTeamHandler(deps.TeamUC)
	team.Post("/", teamHandler.Create)
	team.Get("/", teamHandler.List)
	team.Get("/:id", teamHandler.GetByID)
	team.Patch("/:id", teamHandler.Update)
	team.Delete("/:id", teamHandler.Delete)

	// Ventas; /export antes de /:id
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/export", saleHandler.Export)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Patch("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Reportes diarios
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.List)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Put("/:id", reportHandler.Update)
	reports.Delete("/:id", reportHandler.Delete)

	// Configuración: lectura para todos, escritura director
	configHandler := NewConfigHandler(deps.FeeUC, deps.N8nUC)
	fees := protected.Group("/payment-fees")
	fees.Get("/", configHandler.ListFees)
	fees.Post("/", directorOnly, configHandler.CreateFee)
	fees.Put("/:id", directorOnly, configHandler.UpdateFee)
	fees.Delete("/:id", directorOnly, configHandler.DeleteFee)
	protected.Get("/n8n-config", directorOnly, configHandler.GetN8n)
	protected.Put("/n8n-config", directorOnly, configHandler.UpdateN8n)

	// Objetivos; /board antes de /:id
	projections := protected.Group("/projections")
	projectionHandler := NewProjectionHandler(deps.ProjectionUC, deps.BoardUC)
	projections.Get("/board", projectionHandler.Board)
	projections.Get("/", projectionHandler.List)
	projections.Get("/:id", projectionHandler.GetByID)
	projections.Post("/", managers, projectionHandler.Create)
	projections.Put("/:id", managers, projectionHandler.Update)
	projections.Delete("/:id", managers, projectionHandler.Delete)

	// Dashboards y comisiones
	dashboardHandler := NewDashboardHandler(deps.SalesDashUC, deps.ReportsDashUC, deps.CommissionUC)
	protected.Get("/dashboard/sales", dashboardHandler.Sales)
	protected.Get("/dashboard/reports", dashboardHandler.Reports)
	protected.Get("/commissions", dashboardHandler.Commissions)
	protected.Get("/commissions/statement", dashboardHandler.CommissionStatement)

	// Importación masiva (director / manager)
	importGroup := protected.Group("/import", managers)
	importHandler := NewImportHandler(deps.ImportUC)
	importGroup.Post("/preview", importHandler.Preview)
	importGroup.Post("/:type", importHandler.Import)
}
