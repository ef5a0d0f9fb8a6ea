package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockline/stockline-api/internal/application/analytics"
	"github.com/stockline/stockline-api/internal/application/auth"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/application/usecase"
)

// RouterDeps dependencias de los handlers HTTP.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	OrderUC    *usecase.OrderUseCase
	Recorder   *appinv.RecordMovementUseCase
	Reconciler *appinv.ReconcileUseCase
	StatsUC    *analytics.StatisticsUseCase
	PDF        appinv.KardexPDFGenerator
	JWTSecret  string
}

// Router registra todas las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	inventoryHandler := NewInventoryHandler(deps.Recorder, deps.Reconciler, deps.StatsUC, deps.PDF)

	api := app.Group("/api")

	// Rutas públicas.
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	protected.Post("/products", productHandler.Create)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/stats", productHandler.Stats)
	protected.Get("/products/:id", productHandler.GetByID)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	protected.Post("/categories", categoryHandler.Create)
	protected.Get("/categories", categoryHandler.List)
	protected.Get("/categories/:id", categoryHandler.GetByID)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", categoryHandler.Delete)

	protected.Post("/suppliers", supplierHandler.Create)
	protected.Get("/suppliers", supplierHandler.List)
	protected.Get("/suppliers/:id", supplierHandler.GetByID)
	protected.Put("/suppliers/:id", supplierHandler.Update)
	protected.Delete("/suppliers/:id", supplierHandler.Delete)

	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	protected.Delete("/orders/:id", orderHandler.Delete)

	protected.Post("/inventory/movements", inventoryHandler.RegisterMovement)
	protected.Get("/inventory/movements", inventoryHandler.ListMovements)
	protected.Get("/inventory/movements/:id", inventoryHandler.GetMovement)
	protected.Put("/inventory/movements/:id", inventoryHandler.UpdateMovement)
	protected.Delete("/inventory/movements/:id", inventoryHandler.ReverseMovement)
	protected.Get("/inventory/products/:id/movements", inventoryHandler.ListProductMovements)
	protected.Get("/inventory/products/:id/kardex", inventoryHandler.KardexPDF)
	protected.Post("/inventory/products/:id/reconcile", inventoryHandler.Reconcile)
	protected.Get("/inventory/statistics", inventoryHandler.Statistics)
	protected.Get("/inventory/statistics/roi", inventoryHandler.StatisticsROI)
}
