package dto

import (
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	ProductID        string          `json:"product_id"`
	TaxInvoiceNumber string          `json:"tax_invoice_number"`
	PurchaseQuantity int             `json:"purchase_quantity"`
	UnitCostPrice    decimal.Decimal `json:"unit_cost_price"`
	ExpirationDate   time.Time       `json:"expiration_date"`
	PurchaseDate     time.Time       `json:"purchase_date"`
}

// UpdateBatchRequest body para PUT /api/batches/:id; campos ausentes no cambian.
type UpdateBatchRequest struct {
	TaxInvoiceNumber *string          `json:"tax_invoice_number,omitempty"`
	PurchaseQuantity *int             `json:"purchase_quantity,omitempty"`
	CurrentQuantity  *int             `json:"current_quantity,omitempty"`
	UnitCostPrice    *decimal.Decimal `json:"unit_cost_price,omitempty"`
	ExpirationDate   *time.Time       `json:"expiration_date,omitempty"`
	PurchaseDate     *time.Time       `json:"purchase_date,omitempty"`
}

// BatchResponse lote con su saldo actual.
type BatchResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	TaxInvoiceNumber string          `json:"tax_invoice_number"`
	PurchaseQuantity int             `json:"purchase_quantity"`
	CurrentQuantity  int             `json:"current_quantity"`
	UnitCostPrice    decimal.Decimal `json:"unit_cost_price"`
	ExpirationDate   time.Time       `json:"expiration_date"`
	PurchaseDate     time.Time       `json:"purchase_date"`
}

// FromBatch mapea la entidad a su representación HTTP.
func FromBatch(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:               b.ID,
		ProductID:        b.ProductID,
		TaxInvoiceNumber: b.TaxInvoiceNumber,
		PurchaseQuantity: b.PurchaseQuantity,
		CurrentQuantity:  b.CurrentQuantity,
		UnitCostPrice:    b.UnitCostPrice,
		ExpirationDate:   b.ExpirationDate,
		PurchaseDate:     b.PurchaseDate,
	}
}

// StockSyncResponse resultado de POST /api/products/:id/sync-stock.
type StockSyncResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
}
