package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/analytics"
	"github.com/jhoicas/Inventario-suministros/internal/application/auth"
	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/application/report"
	"github.com/jhoicas/Inventario-suministros/internal/application/usecase"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	AuditLogUC    *usecase.AuditLogUseCase
	Ledger        *inventory.Ledger
	Movements     *inventory.MovementQueries
	Replenishment *inventory.ReplenishmentUseCase
	Dashboard     *analytics.DashboardUseCase
	Export        *report.ExportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	protected.Get("/auth/me", authHandler.Me)

	// Users (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", writers, categoryHandler.Create)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Get("/", productHandler.List)
	products.Post("/", writers, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Patch("/:id/deactivate", writers, productHandler.Deactivate)
	products.Patch("/:id/activate", writers, productHandler.Activate)
	products.Get("/:id/reconciliation", productHandler.Reconciliation)

	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Movements)

	// Receipts (ingresos)
	receipts := protected.Group("/receipts")
	receipts.Get("/", inventoryHandler.ListReceipts)
	receipts.Post("/", writers, inventoryHandler.CreateReceipt)
	receipts.Get("/:id", inventoryHandler.GetReceipt)
	receipts.Put("/:id", writers, inventoryHandler.UpdateReceipt)
	receipts.Delete("/:id", adminOnly, inventoryHandler.DeleteReceipt)

	// Issues (salidas)
	issues := protected.Group("/issues")
	issues.Get("/", inventoryHandler.ListIssues)
	issues.Post("/", writers, inventoryHandler.CreateIssue)
	issues.Get("/:id", inventoryHandler.GetIssue)
	issues.Put("/:id", writers, inventoryHandler.UpdateIssue)
	issues.Delete("/:id", adminOnly, inventoryHandler.DeleteIssue)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Replenishment, deps.Dashboard, deps.Export)
	reports.Get("/alerts", reportHandler.Alerts)
	reports.Get("/kpis", reportHandler.KPIs)
	reports.Get("/consolidated", reportHandler.Consolidated)
	reports.Get("/:kind/:format", reportHandler.Export)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Logs (admin)
	logHandler := NewLogHandler(deps.AuditLogUC)
	protected.Get("/logs", adminOnly, logHandler.List)
}
