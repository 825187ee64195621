package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/purchasing"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory  *appinv.Service
	Purchasing *purchasing.UseCase
	Report     *report.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", inventoryHandler.DeleteItem)
	invGroup.Post("/items/:id/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/items/:id/movements", inventoryHandler.History)
	invGroup.Get("/items/:id/reconciliation", inventoryHandler.Reconcile)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	invGroup.Get("/summary", inventoryHandler.GetSummary)

	invGroup.Get("/alerts", inventoryHandler.ListAlerts)
	invGroup.Post("/alerts/sweep", inventoryHandler.SweepAlerts)
	invGroup.Post("/alerts/:id/resolve", inventoryHandler.ResolveAlert)

	if deps.Report != nil {
		reportHandler := NewReportHandler(deps.Report)
		invGroup.Get("/report.pdf", reportHandler.DownloadPDF)
	}

	if deps.Purchasing != nil {
		orders := protected.Group("/purchase-orders")
		poHandler := NewPurchaseOrderHandler(deps.Purchasing)
		orders.Post("/", poHandler.Create)
		orders.Get("/:id", poHandler.GetByID)
		orders.Post("/:id/receive", poHandler.Receive)
		orders.Post("/:id/cancel", poHandler.Cancel)
		orders.Delete("/:id", poHandler.Delete)
	}
}
