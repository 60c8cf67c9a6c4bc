package inventory

import (
	"sort"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PlannedAllocation cantidad a tomar de un lote y su costo unitario.
type PlannedAllocation struct {
	BatchID  string
	Quantity int
	UnitCost decimal.Decimal
}

// Plan resultado de asignar una cantidad de un producto a sus lotes.
type Plan struct {
	ProductID        string
	Quantity         int
	UnitCostSnapshot decimal.Decimal
	Allocations      []PlannedAllocation
}

// PlanFEFO (servicio de dominio) reparte quantity entre los lotes candidatos consumiendo
// primero los que vencen antes. No modifica los lotes: el llamador aplica los descuentos.
// Los candidatos deben venir ya filtrados (producto, vigencia, cantidad > 0); se reordenan
// por vencimiento y luego por ID para que el resultado sea determinista.
func PlanFEFO(productID string, candidates []*entity.Batch, quantity int) (*Plan, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser mayor que 0")
	}
	if len(candidates) == 0 {
		return nil, &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Missing: quantity, NoBatches: true}
	}

	batches := make([]*entity.Batch, len(candidates))
	copy(batches, candidates)
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.ExpirationDate.Equal(b.ExpirationDate) {
			return a.ExpirationDate.Before(b.ExpirationDate)
		}
		return a.ID < b.ID
	})

	remaining := quantity
	allocations := make([]PlannedAllocation, 0, len(batches))
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		if b.CurrentQuantity <= 0 {
			continue
		}
		take := min(b.CurrentQuantity, remaining)
		allocations = append(allocations, PlannedAllocation{
			BatchID:  b.ID,
			Quantity: take,
			UnitCost: b.UnitCostPrice,
		})
		remaining -= take
	}
	if remaining > 0 {
		return nil, &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Missing: remaining}
	}

	return &Plan{
		ProductID:        productID,
		Quantity:         quantity,
		UnitCostSnapshot: CostCalculator(allocations, quantity),
		Allocations:      allocations,
	}, nil
}
