package sales

import (
	"context"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/inventory"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}

// BatchAllocator interfaz de solo lectura que decide qué lotes financian una línea (FEFO).
type BatchAllocator interface {
	Allocate(ctx context.Context, batches repository.BatchRepository, productID string, quantity int, asOf time.Time) (*inventory.Plan, error)
}

// StockLedger interfaz para aplicar asignaciones sobre lotes y producto en la transacción del caller.
// Si retorna error (ej: ErrInvariantViolation), el caller debe hacer rollback.
type StockLedger interface {
	Consume(ctx context.Context, store repository.Store, productID string, allocations []*entity.AllocationSaleItem) error
	Release(ctx context.Context, store repository.Store, productID string, allocations []*entity.AllocationSaleItem) error
}
