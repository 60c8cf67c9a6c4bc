package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchUseCase mantiene los lotes de compra y el agregado de stock del producto.
// Todo cambio de cantidades pasa por el Ledger dentro de una única transacción.
type BatchUseCase struct {
	txRunner TxRunner
	ledger   *Ledger
}

// NewBatchUseCase construye el caso de uso de lotes.
func NewBatchUseCase(txRunner TxRunner, ledger *Ledger) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner, ledger: ledger}
}

// CreateBatchInput entrada para registrar un lote. CurrentQuantity inicia igual a PurchaseQuantity.
type CreateBatchInput struct {
	ProductID        string
	TaxInvoiceNumber string
	PurchaseQuantity int
	UnitCostPrice    decimal.Decimal
	ExpirationDate   time.Time
	PurchaseDate     time.Time
}

// UpdateBatchInput campos editables de un lote; nil = sin cambio.
type UpdateBatchInput struct {
	TaxInvoiceNumber *string
	PurchaseQuantity *int
	CurrentQuantity  *int
	UnitCostPrice    *decimal.Decimal
	ExpirationDate   *time.Time
	PurchaseDate     *time.Time
}

func (in UpdateBatchInput) isEmpty() bool {
	return in.TaxInvoiceNumber == nil && in.PurchaseQuantity == nil && in.CurrentQuantity == nil &&
		in.UnitCostPrice == nil && in.ExpirationDate == nil && in.PurchaseDate == nil
}

// Create registra el lote y suma su cantidad al stock del producto.
func (uc *BatchUseCase) Create(ctx context.Context, in CreateBatchInput) (*entity.Batch, error) {
	if in.ProductID == "" || strings.TrimSpace(in.TaxInvoiceNumber) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseQuantity <= 0 || !in.UnitCostPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ExpirationDate.IsZero() || in.PurchaseDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		TaxInvoiceNumber: strings.TrimSpace(in.TaxInvoiceNumber),
		PurchaseQuantity: in.PurchaseQuantity,
		CurrentQuantity:  in.PurchaseQuantity,
		UnitCostPrice:    in.UnitCostPrice,
		ExpirationDate:   in.ExpirationDate,
		PurchaseDate:     in.PurchaseDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		product, err := store.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("no se pudo crear el lote: producto")
		}
		if err := store.Batches.Create(ctx, batch); err != nil {
			return err
		}
		return uc.ledger.IncreaseStock(ctx, store, batch.ProductID, batch.CurrentQuantity)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Update edita un lote. Si cambia purchase_quantity sin indicar current_quantity, el saldo se desplaza
// en la misma diferencia. La diferencia de saldo se refleja en el stock del producto.
func (uc *BatchUseCase) Update(ctx context.Context, batchID string, in UpdateBatchInput) (*entity.Batch, error) {
	if in.isEmpty() {
		return nil, domain.Invalid("ningún dato proporcionado para actualizar")
	}
	if in.PurchaseQuantity != nil && *in.PurchaseQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCostPrice != nil && !in.UnitCostPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Batch
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		old, err := store.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.NotFound("lote")
		}

		purchase := old.PurchaseQuantity
		if in.PurchaseQuantity != nil {
			purchase = *in.PurchaseQuantity
		}
		current := old.CurrentQuantity
		switch {
		case in.CurrentQuantity != nil:
			current = *in.CurrentQuantity
		case in.PurchaseQuantity != nil:
			current = old.CurrentQuantity + (purchase - old.PurchaseQuantity)
		}
		if current > purchase {
			return domain.Invalid("la cantidad actual no puede ser mayor que la cantidad comprada")
		}
		if current < 0 {
			return domain.Invalid("la reducción de la compra dejaría el stock actual negativo")
		}

		next := *old
		next.PurchaseQuantity = purchase
		if in.TaxInvoiceNumber != nil {
			next.TaxInvoiceNumber = strings.TrimSpace(*in.TaxInvoiceNumber)
		}
		if in.UnitCostPrice != nil {
			next.UnitCostPrice = *in.UnitCostPrice
		}
		if in.ExpirationDate != nil {
			next.ExpirationDate = *in.ExpirationDate
		}
		if in.PurchaseDate != nil {
			next.PurchaseDate = *in.PurchaseDate
		}
		next.UpdatedAt = time.Now()

		// Con diferencia negativa se descuenta antes de bajar purchase_quantity; con positiva
		// se sube purchase_quantity antes de sumar, para no salir nunca de 0 <= current <= purchase.
		delta := current - old.CurrentQuantity
		if delta < 0 {
			if err := uc.ledger.DecreaseBatch(ctx, store, batchID, -delta); err != nil {
				return err
			}
			if err := uc.ledger.DecreaseStock(ctx, store, old.ProductID, -delta); err != nil {
				return err
			}
		}
		if err := store.Batches.Update(ctx, &next); err != nil {
			return err
		}
		if delta > 0 {
			if err := uc.ledger.IncreaseBatch(ctx, store, batchID, delta); err != nil {
				return err
			}
			if err := uc.ledger.IncreaseStock(ctx, store, old.ProductID, delta); err != nil {
				return err
			}
		}
		next.CurrentQuantity = current
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get devuelve un lote.
func (uc *BatchUseCase) Get(ctx context.Context, batchID string) (*entity.Batch, error) {
	var batch *entity.Batch
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		b, err := store.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound("lote")
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ListByProduct devuelve los lotes de un producto existente en orden FEFO.
func (uc *BatchUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	var batches []*entity.Batch
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		product, err := store.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		batches, err = store.Batches.ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// Delete elimina un lote sin asignaciones y resta su saldo del stock del producto.
func (uc *BatchUseCase) Delete(ctx context.Context, batchID string) error {
	return uc.txRunner.Run(ctx, func(store repository.Store) error {
		batch, err := store.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.NotFound("lote")
		}
		used, err := store.Batches.HasAllocations(ctx, batchID)
		if err != nil {
			return err
		}
		if used {
			return domain.Conflict("el lote ya financió ventas y no puede eliminarse")
		}
		if batch.CurrentQuantity > 0 {
			if err := uc.ledger.DecreaseStock(ctx, store, batch.ProductID, batch.CurrentQuantity); err != nil {
				return err
			}
		}
		return store.Batches.Delete(ctx, batchID)
	})
}

// ResyncStock recalcula el stock del producto a partir de sus lotes.
func (uc *BatchUseCase) ResyncStock(ctx context.Context, productID string) (int, error) {
	var synced int
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		n, err := uc.ledger.Resync(ctx, store, productID)
		if err != nil {
			return err
		}
		synced = n
		return nil
	})
	return synced, err
}

// ResyncAll recalcula el stock de todos los productos; cada producto en su propia transacción.
func (uc *BatchUseCase) ResyncAll(ctx context.Context) (map[string]int, error) {
	var ids []string
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		ids, err = store.Products.ListIDs(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	result := make(map[string]int, len(ids))
	for _, id := range ids {
		n, err := uc.ResyncStock(ctx, id)
		if err != nil {
			return result, err
		}
		result[id] = n
	}
	return result, nil
}
