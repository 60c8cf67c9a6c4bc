package dto

import (
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// total_value positivo se respeta; ausente o cero se calcula a partir de los ítems.
type CreateSaleRequest struct {
	CustomerID string                  `json:"customer_id"`
	Channel    string                  `json:"channel"`
	SaleDate   *time.Time              `json:"sale_date,omitempty"`
	Status     string                  `json:"status,omitempty"`
	TotalValue *decimal.Decimal        `json:"total_value,omitempty"`
	Items      []CreateSaleItemRequest `json:"items"`
}

// CreateSaleItemRequest línea de la venta.
type CreateSaleItemRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
}

// UpdateSaleRequest body para PATCH /api/sales/:id (solo cabecera).
type UpdateSaleRequest struct {
	CustomerID *string          `json:"customer_id,omitempty"`
	Channel    *string          `json:"channel,omitempty"`
	SaleDate   *time.Time       `json:"sale_date,omitempty"`
	Status     *string          `json:"status,omitempty"`
	TotalValue *decimal.Decimal `json:"total_value,omitempty"`
}

// UpdateSaleItemRequest body para PATCH /api/sale-items/:id.
type UpdateSaleItemRequest struct {
	ProductID     *string          `json:"product_id,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	UnitSalePrice *decimal.Decimal `json:"unit_sale_price,omitempty"`
}

// SaleResponse venta con líneas y asignaciones.
type SaleResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Channel    string             `json:"channel"`
	SaleDate   time.Time          `json:"sale_date"`
	Status     string             `json:"status"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Items      []SaleItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SaleItemResponse línea con el costo capturado y los lotes que la financian.
type SaleItemResponse struct {
	ID               string               `json:"id"`
	ProductID        string               `json:"product_id"`
	Quantity         int                  `json:"quantity"`
	UnitSalePrice    decimal.Decimal      `json:"unit_sale_price"`
	UnitCostSnapshot decimal.Decimal      `json:"unit_cost_snapshot"`
	Allocations      []AllocationResponse `json:"allocations"`
}

// AllocationResponse cantidad tomada de un lote.
type AllocationResponse struct {
	BatchID  string `json:"batch_id"`
	Quantity int    `json:"quantity"`
}

// FromSale mapea la entidad a su representación HTTP.
func FromSale(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Channel:    s.Channel,
		SaleDate:   s.SaleDate,
		Status:     string(s.Status),
		TotalValue: s.TotalValue,
		Items:      make([]SaleItemResponse, 0, len(s.Items)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for _, it := range s.Items {
		item := SaleItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			UnitSalePrice:    it.UnitSalePrice,
			UnitCostSnapshot: it.UnitCostSnapshot,
			Allocations:      make([]AllocationResponse, 0, len(it.Allocations)),
		}
		for _, a := range it.Allocations {
			item.Allocations = append(item.Allocations, AllocationResponse{BatchID: a.BatchID, Quantity: a.Quantity})
		}
		out.Items = append(out.Items, item)
	}
	return out
}
