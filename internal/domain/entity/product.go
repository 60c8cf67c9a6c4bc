package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// CurrentStock es el agregado derivado Σ(batch.CurrentQuantity); solo el ledger de stock lo modifica.
type Product struct {
	ID           string
	Name         string
	Code         string // código interno
	Barcode      string
	SalePrice    decimal.Decimal // precio de venta sugerido
	CurrentStock int
	DeletedAt    *time.Time // borrado lógico
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDeleted indica si el producto fue deshabilitado (borrado lógico).
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}
