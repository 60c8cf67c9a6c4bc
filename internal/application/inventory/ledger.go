package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/Caio-C8/inventory-system/pkg/logger"
)

// Ledger es el único componente que modifica batch.current_quantity y product.current_stock.
// Cada ajuste de lote va acompañado del ajuste del agregado del producto en la misma transacción,
// de modo que current_stock == Σ(current_quantity) se mantiene de forma incremental.
type Ledger struct {
	log *logger.Logger
}

// NewLedger construye el ledger de stock.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{log: log}
}

// IncreaseBatch suma qty al saldo del lote (nunca por encima de purchase_quantity).
func (l *Ledger) IncreaseBatch(ctx context.Context, store repository.Store, batchID string, qty int) error {
	if qty <= 0 {
		return domain.Invalid("la cantidad a ajustar debe ser mayor que 0")
	}
	return l.check(store.Batches.IncreaseQuantity(ctx, batchID, qty), "batch_id", batchID, qty)
}

// DecreaseBatch resta qty del saldo del lote. Un saldo insuficiente es una violación de invariante.
func (l *Ledger) DecreaseBatch(ctx context.Context, store repository.Store, batchID string, qty int) error {
	if qty <= 0 {
		return domain.Invalid("la cantidad a ajustar debe ser mayor que 0")
	}
	return l.check(store.Batches.DecreaseQuantity(ctx, batchID, qty), "batch_id", batchID, -qty)
}

// IncreaseStock suma qty al agregado del producto.
func (l *Ledger) IncreaseStock(ctx context.Context, store repository.Store, productID string, qty int) error {
	if qty <= 0 {
		return domain.Invalid("la cantidad a ajustar debe ser mayor que 0")
	}
	return l.check(store.Products.IncreaseStock(ctx, productID, qty), "product_id", productID, qty)
}

// DecreaseStock resta qty del agregado del producto.
func (l *Ledger) DecreaseStock(ctx context.Context, store repository.Store, productID string, qty int) error {
	if qty <= 0 {
		return domain.Invalid("la cantidad a ajustar debe ser mayor que 0")
	}
	return l.check(store.Products.DecreaseStock(ctx, productID, qty), "product_id", productID, -qty)
}

// SetStock fija el agregado del producto a un valor absoluto.
func (l *Ledger) SetStock(ctx context.Context, store repository.Store, productID string, qty int) error {
	if qty < 0 {
		return domain.Invalid("el stock no puede ser negativo")
	}
	return store.Products.SetStock(ctx, productID, qty)
}

// Resync recalcula current_stock como la suma real de los lotes y la persiste (reparación de desvíos).
func (l *Ledger) Resync(ctx context.Context, store repository.Store, productID string) (int, error) {
	product, err := store.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.NotFound("producto")
	}
	total, err := store.Batches.SumCurrentByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if err := l.SetStock(ctx, store, productID, total); err != nil {
		return 0, err
	}
	if total != product.CurrentStock {
		l.log.Warn().
			Str("product_id", productID).
			Int("previous_stock", product.CurrentStock).
			Int("synced_stock", total).
			Msg("stock del producto resincronizado con sus lotes")
	}
	return total, nil
}

// Consume descuenta cada asignación de su lote y el total del producto (venta o restauración).
func (l *Ledger) Consume(ctx context.Context, store repository.Store, productID string, allocations []*entity.AllocationSaleItem) error {
	total := 0
	for _, alloc := range allocations {
		if err := l.DecreaseBatch(ctx, store, alloc.BatchID, alloc.Quantity); err != nil {
			return err
		}
		total += alloc.Quantity
	}
	if total == 0 {
		return nil
	}
	return l.DecreaseStock(ctx, store, productID, total)
}

// Release devuelve cada asignación a su lote y el total al producto (reversión de una línea).
func (l *Ledger) Release(ctx context.Context, store repository.Store, productID string, allocations []*entity.AllocationSaleItem) error {
	total := 0
	for _, alloc := range allocations {
		if err := l.IncreaseBatch(ctx, store, alloc.BatchID, alloc.Quantity); err != nil {
			return err
		}
		total += alloc.Quantity
	}
	if total == 0 {
		return nil
	}
	return l.IncreaseStock(ctx, store, productID, total)
}

// check registra en nivel error las violaciones de invariante y añade contexto al error.
func (l *Ledger) check(err error, key, id string, delta int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvariantViolation) {
		l.log.Error().Err(err).Str(key, id).Int("delta", delta).Msg("ajuste de stock rechazado")
		return fmt.Errorf("%s %s (delta %d): %w", key, id, delta, err)
	}
	return err
}
