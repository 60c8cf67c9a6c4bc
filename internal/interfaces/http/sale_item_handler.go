package http

import (
	"github.com/Caio-C8/inventory-system/internal/application/dto"
	"github.com/Caio-C8/inventory-system/internal/application/sales"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// SaleItemHandler maneja la edición y eliminación de líneas de venta.
type SaleItemHandler struct {
	uc  *sales.SaleItemUseCase
	log *logger.Logger
}

// NewSaleItemHandler construye el handler.
func NewSaleItemHandler(uc *sales.SaleItemUseCase, log *logger.Logger) *SaleItemHandler {
	return &SaleItemHandler{uc: uc, log: log}
}

// Update cambia producto, cantidad o precio de la línea; responde con la venta actualizada.
// PATCH /api/sale-items/:id
func (h *SaleItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.Update(c.Context(), c.Params("id"), sales.UpdateSaleItemInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitSalePrice: in.UnitSalePrice,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// Delete elimina la línea; responde con la venta actualizada.
// DELETE /api/sale-items/:id
func (h *SaleItemHandler) Delete(c *fiber.Ctx) error {
	sale, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}
