package inventory

import (
	"context"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain/inventory"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
)

// Allocator decide cuánto tomar de cada lote (FEFO). Es de solo lectura: el Ledger aplica los descuentos.
type Allocator struct{}

// NewAllocator construye el asignador de lotes.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate carga los lotes vendibles del producto en asOf (vigentes, con saldo, producto activo)
// y calcula el plan de asignación con su costo unitario ponderado.
// batches debe estar atado a la transacción del llamador para que lectura y descuento compartan snapshot.
func (a *Allocator) Allocate(
	ctx context.Context,
	batches repository.BatchRepository,
	productID string,
	quantity int,
	asOf time.Time,
) (*inventory.Plan, error) {
	candidates, err := batches.ListSellable(ctx, productID, asOf)
	if err != nil {
		return nil, err
	}
	return inventory.PlanFEFO(productID, candidates, quantity)
}
