package sales

import (
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/inventory"
	"github.com/google/uuid"
)

// toAllocations convierte un plan en filas AllocationSaleItem para la línea indicada.
func toAllocations(saleItemID string, plan *inventory.Plan) []*entity.AllocationSaleItem {
	out := make([]*entity.AllocationSaleItem, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		out = append(out, &entity.AllocationSaleItem{
			ID:         uuid.New().String(),
			SaleItemID: saleItemID,
			BatchID:    a.BatchID,
			Quantity:   a.Quantity,
		})
	}
	return out
}
