package http

import (
	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/internal/application/sales"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale    *sales.CreateSaleUseCase
	SaleItems     *sales.SaleItemUseCase
	SaleLifecycle *sales.SaleLifecycleUseCase
	Batches       *inventory.BatchUseCase
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Sales
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleLifecycle, deps.Logger)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id", saleHandler.Update)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Post("/:id/restore", saleHandler.Restore)

	// Sale items
	itemHandler := NewSaleItemHandler(deps.SaleItems, deps.Logger)
	items := api.Group("/sale-items")
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Batches y stock
	batchHandler := NewBatchHandler(deps.Batches, deps.Logger)
	batches := api.Group("/batches")
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)
	api.Get("/products/:id/batches", batchHandler.ListByProduct)
	api.Post("/products/:id/sync-stock", batchHandler.SyncStock)
}
