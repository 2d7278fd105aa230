package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/analytics"
	"github.com/jmarte/equimed-api/internal/application/auth"
	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/application/quotations"
	"github.com/jmarte/equimed-api/internal/application/rentals"
	"github.com/jmarte/equimed-api/internal/application/sales"
	"github.com/jmarte/equimed-api/internal/application/usecase"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC   *usecase.OrganizationUseCase
	ProductUC        *usecase.ProductUseCase
	ClientUC         *usecase.ClientUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	FailureUC        *usecase.FailureUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	QuotationUC      *quotations.UseCase
	SaleUC           *sales.UseCase
	RentalUC         *rentals.UseCase
	DashboardUC      *analytics.DashboardUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizations (alta pública para el registro inicial del tenant)
	orgs := api.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Deactivate)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// System failures (protegido; borrar solo para admin)
	failures := protected.Group("/failures")
	failureHandler := NewFailureHandler(deps.FailureUC)
	failures.Post("/", failureHandler.Report)
	failures.Get("/", failureHandler.List)
	failures.Get("/:id", failureHandler.GetByID)
	failures.Post("/:id/resolve", failureHandler.Resolve)
	failures.Delete("/:id", RequireRole(entity.RoleAdmin), failureHandler.Delete)

	// Inventory movements (protegido; movimientos manuales solo para
	// admin y almacén)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.List)
	invGroup.Get("/products/:id/movements", inventoryHandler.ListByProduct)

	// Quotations (protegido)
	qts := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	qts.Post("/", quotationHandler.Create)
	qts.Get("/", quotationHandler.List)
	qts.Post("/expire", quotationHandler.ExpirePending)
	qts.Get("/:id", quotationHandler.GetByID)
	qts.Put("/:id", quotationHandler.Update)
	qts.Delete("/:id", quotationHandler.Delete)
	qts.Post("/:id/accept", quotationHandler.Accept)
	qts.Post("/:id/reject", quotationHandler.Reject)
	qts.Post("/:id/convert-to-sale", quotationHandler.ConvertToSale)
	qts.Post("/:id/convert-to-rental", quotationHandler.ConvertToRental)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Post("/:id/payments", saleHandler.AddPayment)
	salesGroup.Get("/:id/payments", saleHandler.ListPayments)

	// Rentals (protegido)
	rentalsGroup := protected.Group("/rentals")
	rentalHandler := NewRentalHandler(deps.RentalUC)
	rentalsGroup.Post("/", rentalHandler.Create)
	rentalsGroup.Get("/", rentalHandler.List)
	rentalsGroup.Post("/mark-overdue", rentalHandler.MarkOverdue)
	rentalsGroup.Get("/:id", rentalHandler.GetByID)
	rentalsGroup.Post("/:id/return", rentalHandler.Return)
	rentalsGroup.Post("/:id/cancel", rentalHandler.Cancel)
	rentalsGroup.Post("/:id/payments", rentalHandler.AddPayment)
	rentalsGroup.Get("/:id/payments", rentalHandler.ListPayments)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
}
