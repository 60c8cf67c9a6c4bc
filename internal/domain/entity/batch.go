package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote de compra: unidades con un mismo costo y una misma fecha de vencimiento.
// Invariante: 0 <= CurrentQuantity <= PurchaseQuantity.
type Batch struct {
	ID               string
	ProductID        string
	TaxInvoiceNumber string // número de la nota fiscal de compra
	PurchaseQuantity int
	CurrentQuantity  int
	UnitCostPrice    decimal.Decimal
	ExpirationDate   time.Time
	PurchaseDate     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SellableAt indica si el lote puede financiar una venta en la fecha dada.
func (b *Batch) SellableAt(asOf time.Time) bool {
	return b.CurrentQuantity > 0 && b.ExpirationDate.After(asOf)
}
