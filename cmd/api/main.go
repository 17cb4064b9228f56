package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/ventas-dashboard-api/docs"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/auth"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/cache"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/ventas-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-dashboard-api/internal/jobs"
	"github.com/jhoicas/ventas-dashboard-api/pkg/config"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

// repos puertos usados por los casos de uso, independientes del driver.
type repos struct {
	sales       repository.SaleRepository
	reports     repository.ActivityReportRepository
	team        repository.TeamMemberRepository
	fees        repository.PaymentFeeRepository
	projections repository.ProjectionRepository
	n8n         repository.N8nConfigRepository
	tx          repository.TxRunner
}

// @title                       Ventas Dashboard API
// @version                     1.0
// @description                 Ventas, reportes de actividad, comisiones y objetivos del equipo comercial.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.DB.Driver {
	case config.StorageMemory:
		m := memory.NewRepositories(memory.NewStore())
		r = repos{m.Sales, m.Reports, m.Team, m.Fees, m.Projections, m.N8n, m.Tx}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		p := postgres.NewRepositories(pool)
		r = repos{p.Sales, p.Reports, p.Team, p.Fees, p.Projections, p.N8n, p.Tx}
	}

	// Tabla de comisiones cacheada en Redis (opcional)
	redisClient := cache.NewRedisClient(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	feeCache := cache.NewFeeCache(r.fees, redisClient, cfg.Redis.FeeTTL, log)

	feeUC := usecase.NewPaymentFeeUseCase(feeCache)
	teamUC := usecase.NewTeamUseCase(r.team)
	seed(ctx, cfg, log, feeUC, teamUC)

	salesDashUC := analytics.NewSalesDashboardUseCase(r.sales, r.reports, feeCache)
	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(r.team, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		TeamUC:        teamUC,
		SaleUC:        usecase.NewSaleUseCase(r.sales, feeCache, spreadsheet.NewWriter(), cfg.Webhook.DefaultPaymentMethod),
		ReportUC:      usecase.NewReportUseCase(r.reports),
		FeeUC:         feeUC,
		N8nUC:         usecase.NewN8nConfigUseCase(r.n8n),
		ProjectionUC:  usecase.NewProjectionUseCase(r.projections, r.team),
		BoardUC:       analytics.NewProjectionBoardUseCase(r.projections, r.team, r.sales, r.reports, feeCache),
		SalesDashUC:   salesDashUC,
		ReportsDashUC: analytics.NewReportsDashboardUseCase(r.reports, r.sales, feeCache),
		CommissionUC:  analytics.NewCommissionUseCase(r.team, r.sales, feeCache, infrapdf.NewMarotoPDFGenerator(cfg.App.Name)),
		ImportUC:      ingest.NewImportUseCase(r.tx, spreadsheet.NewReader(), cfg.Webhook.DefaultPaymentMethod, log.Component("ingest")),
		WebhookUC:     ingest.NewWebhookUseCase(r.sales, r.n8n, cfg.Webhook.APIKey, cfg.Webhook.DefaultPaymentMethod, log.Component("ingest")),
		JWTSecret:     cfg.JWT.Secret,
	}

	// Tareas programadas
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		digest := jobs.NewDigestJob(salesDashUC, cfg.Jobs.DigestPreset, log, 2*time.Minute)
		if err := scheduler.AddJob(jobs.DigestJobName, cfg.Jobs.DigestCron, digest.Run); err != nil {
			log.Fatal().Err(err).Msg("registrar resumen diario")
		}
		if redisClient != nil {
			warm := jobs.NewFeeWarmJob(feeCache, log, 30*time.Second)
			if err := scheduler.AddJob(jobs.FeeWarmJobName, cfg.Jobs.FeeWarmCron, warm.Run); err != nil {
				log.Fatal().Err(err).Msg("registrar precarga de comisiones")
			}
		}
		scheduler.Start()
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		RateLimitMax: cfg.HTTP.RateLimitMax,
		Log:          log,
	})

	// Documento OpenAPI registrado por el paquete docs (swag init)
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	httpRouter.Router(app, deps)

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

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("tareas programadas sin terminar")
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seed tabla de comisiones por defecto y director inicial. Ambas operaciones son idempotentes.
func seed(ctx context.Context, cfg *config.Config, log *logger.Logger, fees *usecase.PaymentFeeUseCase, team *usecase.TeamUseCase) {
	n, err := fees.SeedDefaults(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("semilla de comisiones")
	}
	if n > 0 {
		log.Info().Int("metodos", n).Msg("tabla de comisiones inicial creada")
	}

	if cfg.Seed.DirectorEmail == "" || cfg.Seed.DirectorPassword == "" {
		if cfg.DB.Driver == config.StorageMemory {
			log.Warn().Msg("sin SEED_DIRECTOR_EMAIL/PASSWORD: nadie podrá iniciar sesión")
		}
		return
	}
	created, err := team.EnsureDirector(ctx, cfg.Seed.DirectorName, cfg.Seed.DirectorEmail, cfg.Seed.DirectorPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("semilla del director")
	}
	if created {
		log.Info().Str("email", cfg.Seed.DirectorEmail).Msg("director inicial creado")
	}
}
