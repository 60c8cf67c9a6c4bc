package repository

import (
	"context"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// IncreaseQuantity/DecreaseQuantity son ajustes relativos que respetan 0 <= current <= purchase;
// si el ajuste violaría el invariante devuelven domain.ErrInvariantViolation sin aplicar nada.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// Update persiste los datos descriptivos y purchase_quantity; current_quantity solo vía ajustes.
	Update(ctx context.Context, batch *entity.Batch) error
	Delete(ctx context.Context, id string) error
	// ListSellable devuelve los lotes candidatos para vender el producto en asOf:
	// current_quantity > 0, expiration_date > asOf y producto sin borrado lógico.
	// Orden FEFO (expiration_date ASC, id ASC). En PostgreSQL bloquea las filas (FOR UPDATE).
	ListSellable(ctx context.Context, productID string, asOf time.Time) ([]*entity.Batch, error)
	// ListByProduct todos los lotes del producto (incluidos agotados y vencidos), orden FEFO.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error)
	SumCurrentByProduct(ctx context.Context, productID string) (int, error)
	HasAllocations(ctx context.Context, batchID string) (bool, error)
	IncreaseQuantity(ctx context.Context, batchID string, qty int) error
	DecreaseQuantity(ctx context.Context, batchID string, qty int) error
}
