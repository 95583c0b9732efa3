package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mistock-api/internal/application/analytics"
	"github.com/jhoicas/mistock-api/internal/application/auth"
	"github.com/jhoicas/mistock-api/internal/application/ledger"
	"github.com/jhoicas/mistock-api/internal/application/restock"
	"github.com/jhoicas/mistock-api/internal/application/sales"
	"github.com/jhoicas/mistock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	MovementUC  *ledger.MovementUseCase
	SaleUC      *sales.SaleUseCase
	OrderUC     *restock.PurchaseOrderUseCase
	AnalyticsUC *analytics.AnalyticsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products + libro de movimientos + ventas por producto
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	salesHandler := NewSalesHandler(deps.SaleUC, deps.AnalyticsUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/adjustments", inventoryHandler.RegisterAdjustment)
	products.Get("/:id/movements", inventoryHandler.History)
	products.Post("/:id/sales", salesHandler.RecordSale)
	products.Get("/:id/sales", salesHandler.ListProductSales)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Sales (globales + importación CSV)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", salesHandler.ListSales)
	salesGroup.Post("/import", salesHandler.ImportSales)
	salesGroup.Get("/summary", salesHandler.SalesSummary)

	// Purchase orders + resumen de reposición
	orders := protected.Group("/purchase-orders")
	restockHandler := NewRestockHandler(deps.OrderUC)
	orders.Post("/batch", restockHandler.CreateBatch)
	orders.Get("/", restockHandler.List)
	orders.Patch("/group/:groupId", restockHandler.UpdateGroup)
	orders.Get("/:id", restockHandler.GetByID)
	orders.Patch("/:id", restockHandler.Update)
	orders.Delete("/:id", restockHandler.Delete)
	protected.Get("/restock/summary", restockHandler.Summary)

	// Analytics
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/categories-revenue", analyticsHandler.CategoriesRevenue)
	analyticsGroup.Get("/inventory-trend", analyticsHandler.InventoryTrend)
}
