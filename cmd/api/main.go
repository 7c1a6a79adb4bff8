// @title           Inventario de Suministros API
// @version         1.0
// @description     Stock de suministros de impresión: catálogo, ingresos, salidas, conciliación y reportes.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
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

	_ "github.com/jhoicas/Inventario-suministros/docs"
	appanalytics "github.com/jhoicas/Inventario-suministros/internal/application/analytics"
	"github.com/jhoicas/Inventario-suministros/internal/application/auth"
	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/application/report"
	"github.com/jhoicas/Inventario-suministros/internal/application/usecase"
	infraexcel "github.com/jhoicas/Inventario-suministros/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Inventario-suministros/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-suministros/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-suministros/internal/interfaces/http"
	"github.com/jhoicas/Inventario-suministros/pkg/config"
	"github.com/jhoicas/Inventario-suministros/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", postgres.RedactDSN(cfg.DB.ConnectionString())).
		Str("tx_isolation", cfg.DB.TxIsolation).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		migrator, err := postgres.NewMigrator(pool, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	txRunner, err := postgres.NewTxRunner(pool, cfg.DB.TxIsolation)
	if err != nil {
		log.Fatal().Err(err).Msg("nivel de aislamiento")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	auditLogRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	ledger := inventory.NewLedger(txRunner, reportRepo, log.Zerolog(), inventory.LedgerConfig{
		ConflictRetryBackoff: cfg.Ledger.ConflictRetryBackoff,
	})
	movements := inventory.NewMovementQueries(receiptRepo, issueRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(reportRepo)

	userUC := usecase.NewUserUseCase(userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	auditLogUC := usecase.NewAuditLogUseCase(auditLogRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo)

	// Reportes PDF (maroto) y Excel (excelize)
	exportUC := report.NewExportUseCase(
		movements, productUC, ledger,
		infrapdf.NewMarotoTableRenderer(), infraexcel.NewExcelizeTableRenderer(),
		cfg.Report.Org,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario de Suministros API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		AuditLogUC:    auditLogUC,
		Ledger:        ledger,
		Movements:     movements,
		Replenishment: replenishmentUC,
		Dashboard:     dashboardUC,
		Export:        exportUC,
		JWTSecret:     cfg.JWT.Secret,
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
