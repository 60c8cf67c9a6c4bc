package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

// Estados de venta. Para el motor de inventario solo importan COMPLETED (activa) y CANCELED (revertida).
const (
	SaleStatusPending    SaleStatus = "PENDING"
	SaleStatusPaid       SaleStatus = "PAID"
	SaleStatusInDelivery SaleStatus = "IN_DELIVERY"
	SaleStatusCompleted  SaleStatus = "COMPLETED"
	SaleStatusCanceled   SaleStatus = "CANCELED"
	SaleStatusReturned   SaleStatus = "RETURNED"
)

// Valid indica si el estado es uno de los conocidos.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusPaid, SaleStatusInDelivery,
		SaleStatusCompleted, SaleStatusCanceled, SaleStatusReturned:
		return true
	}
	return false
}

// Sale cabecera de venta. TotalValue es un valor cacheado, editable de forma independiente.
type Sale struct {
	ID         string
	CustomerID string
	Channel    string
	SaleDate   time.Time
	Status     SaleStatus
	TotalValue decimal.Decimal
	Items      []*SaleItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsCanceled indica si la venta está cancelada (stock ya devuelto).
func (s *Sale) IsCanceled() bool {
	return s.Status == SaleStatusCanceled
}

// ItemsTotal suma cantidad × precio de todas las líneas.
func (s *Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Total())
	}
	return total
}
