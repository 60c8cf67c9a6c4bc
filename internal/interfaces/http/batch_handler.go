package http

import (
	"github.com/Caio-C8/inventory-system/internal/application/dto"
	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// BatchHandler maneja lotes y la resincronización de stock.
type BatchHandler struct {
	uc  *inventory.BatchUseCase
	log *logger.Logger
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.BatchUseCase, log *logger.Logger) *BatchHandler {
	return &BatchHandler{uc: uc, log: log}
}

// Create registra un lote de compra.
// POST /api/batches
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	batch, err := h.uc.Create(c.Context(), inventory.CreateBatchInput{
		ProductID:        in.ProductID,
		TaxInvoiceNumber: in.TaxInvoiceNumber,
		PurchaseQuantity: in.PurchaseQuantity,
		UnitCostPrice:    in.UnitCostPrice,
		ExpirationDate:   in.ExpirationDate,
		PurchaseDate:     in.PurchaseDate,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromBatch(batch))
}

// GetByID devuelve un lote.
// GET /api/batches/:id
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromBatch(batch))
}

// ListByProduct lista los lotes de un producto.
// GET /api/products/:id/batches
func (h *BatchHandler) ListByProduct(c *fiber.Ctx) error {
	batches, err := h.uc.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.FromBatch(b))
	}
	return c.JSON(out)
}

// Update edita un lote.
// PUT /api/batches/:id
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	batch, err := h.uc.Update(c.Context(), c.Params("id"), inventory.UpdateBatchInput{
		TaxInvoiceNumber: in.TaxInvoiceNumber,
		PurchaseQuantity: in.PurchaseQuantity,
		CurrentQuantity:  in.CurrentQuantity,
		UnitCostPrice:    in.UnitCostPrice,
		ExpirationDate:   in.ExpirationDate,
		PurchaseDate:     in.PurchaseDate,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromBatch(batch))
}

// Delete elimina un lote sin ventas asociadas.
// DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SyncStock recalcula el stock del producto desde sus lotes.
// POST /api/products/:id/sync-stock
func (h *BatchHandler) SyncStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	n, err := h.uc.ResyncStock(c.Context(), productID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.StockSyncResponse{ProductID: productID, CurrentStock: n})
}
