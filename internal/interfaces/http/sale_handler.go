package http

import (
	"time"

	"github.com/Caio-C8/inventory-system/internal/application/dto"
	"github.com/Caio-C8/inventory-system/internal/application/sales"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	create    *sales.CreateSaleUseCase
	lifecycle *sales.SaleLifecycleUseCase
	log       *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, lifecycle *sales.SaleLifecycleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{create: create, lifecycle: lifecycle, log: log}
}

// Create crea una venta asignando lotes FEFO.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input := sales.CreateSaleInput{
		CustomerID: in.CustomerID,
		Channel:    in.Channel,
		Status:     entity.SaleStatus(in.Status),
		TotalValue: decimal.Zero,
	}
	if in.SaleDate != nil {
		input.SaleDate = *in.SaleDate
	} else {
		input.SaleDate = time.Now()
	}
	if in.TotalValue != nil {
		input.TotalValue = *in.TotalValue
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, sales.CreateSaleItemInput{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitSalePrice: it.UnitSalePrice,
		})
	}

	sale, err := h.create.Create(c.Context(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSale(sale))
}

// GetByID devuelve la venta con líneas y asignaciones.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.create.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// Update edita la cabecera de la venta.
// PATCH /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input := sales.UpdateSaleInput{
		CustomerID: in.CustomerID,
		Channel:    in.Channel,
		SaleDate:   in.SaleDate,
		TotalValue: in.TotalValue,
	}
	if in.Status != nil {
		status := entity.SaleStatus(*in.Status)
		input.Status = &status
	}
	sale, err := h.lifecycle.UpdateHeader(c.Context(), c.Params("id"), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// Cancel devuelve el stock de la venta y la marca como cancelada.
// POST /api/sales/:id/cancel
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.lifecycle.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// Restore vuelve a descontar las asignaciones registradas de una venta cancelada.
// POST /api/sales/:id/restore
func (h *SaleHandler) Restore(c *fiber.Ctx) error {
	sale, err := h.lifecycle.Restore(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromSale(sale))
}
