package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pro/internal/application/catalog"
	"github.com/tu-usuario/farmacia-pro/internal/application/ledger"
	"github.com/tu-usuario/farmacia-pro/internal/application/purchasing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	LedgerUC     *ledger.UseCase
	PurchasingUC *purchasing.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas de inventario requieren
// Bearer Token: el actor del token queda registrado en cada movimiento.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo de artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListBelowReorder)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)

	// Libro de movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/closing", movementHandler.ClosingSummary)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Órdenes de compra
	pos := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchasingUC)
	pos.Post("/", poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/:id/receive", poHandler.Receive)
}
