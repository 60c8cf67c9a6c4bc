package sales

import (
	"context"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/shopspring/decimal"
)

// SaleItemUseCase edita o elimina líneas de una venta activa, revirtiendo y rehaciendo sus asignaciones.
type SaleItemUseCase struct {
	txRunner  TxRunner
	allocator BatchAllocator
	ledger    StockLedger
	log       *logger.Logger
}

// NewSaleItemUseCase construye el caso de uso.
func NewSaleItemUseCase(txRunner TxRunner, allocator BatchAllocator, ledger StockLedger, log *logger.Logger) *SaleItemUseCase {
	return &SaleItemUseCase{
		txRunner:  txRunner,
		allocator: allocator,
		ledger:    ledger,
		log:       log,
	}
}

// UpdateSaleItemInput campos editables de una línea; nil = conservar el valor actual.
type UpdateSaleItemInput struct {
	ProductID     *string
	Quantity      *int
	UnitSalePrice *decimal.Decimal
}

func (in UpdateSaleItemInput) isEmpty() bool {
	return in.ProductID == nil && in.Quantity == nil && in.UnitSalePrice == nil
}

// Update modifica producto, cantidad y/o precio de una línea.
// Si cambia producto o cantidad, devuelve las asignaciones anteriores a sus lotes y asigna de nuevo
// con la fecha original de la venta. El total de la venta se ajusta con la diferencia de la línea.
func (uc *SaleItemUseCase) Update(ctx context.Context, saleItemID string, in UpdateSaleItemInput) (*entity.Sale, error) {
	if in.isEmpty() {
		return nil, domain.Invalid("ningún dato proporcionado para actualizar")
	}
	if in.ProductID != nil && *in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitSalePrice != nil && in.UnitSalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		// 1) Línea actual con asignaciones y venta dueña (bloqueada)
		item, sale, err := loadItemAndSale(ctx, store, saleItemID)
		if err != nil {
			return err
		}
		if sale.IsCanceled() {
			return domain.Conflict("no es posible editar ítems de una venta cancelada")
		}

		// 2) Valores destino
		targetProduct := item.ProductID
		if in.ProductID != nil {
			targetProduct = *in.ProductID
		}
		targetQty := item.Quantity
		if in.Quantity != nil {
			targetQty = *in.Quantity
		}
		targetPrice := item.UnitSalePrice
		if in.UnitSalePrice != nil {
			targetPrice = entity.RoundMoney(*in.UnitSalePrice)
		}
		oldItemTotal := item.Total()

		// 3) Sin cambio de inventario: solo precio y total
		snapshot := item.UnitCostSnapshot
		if targetProduct != item.ProductID || targetQty != item.Quantity {
			// 4) Un producto solo puede aparecer en una línea de la venta
			for _, sibling := range sale.Items {
				if sibling.ID != item.ID && sibling.ProductID == targetProduct {
					return domain.Invalid("este producto ya existe en esta venta; elimine este ítem o cambie la cantidad del ítem existente")
				}
			}
			if targetProduct != item.ProductID {
				product, err := store.Products.GetByID(ctx, targetProduct)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.NotFound("producto")
				}
				if product.IsDeleted() {
					return domain.Conflict("el producto está deshabilitado")
				}
			}

			// 5) Reversión de la asignación anterior
			if err := uc.ledger.Release(ctx, store, item.ProductID, item.Allocations); err != nil {
				return err
			}
			if err := store.SaleItems.DeleteAllocations(ctx, item.ID); err != nil {
				return err
			}

			// 6) Nueva asignación a la fecha original de la venta
			plan, err := uc.allocator.Allocate(ctx, store.Batches, targetProduct, targetQty, sale.SaleDate)
			if err != nil {
				return err
			}
			allocations := toAllocations(item.ID, plan)
			if err := store.SaleItems.CreateAllocations(ctx, item.ID, allocations); err != nil {
				return err
			}
			if err := uc.ledger.Consume(ctx, store, targetProduct, allocations); err != nil {
				return err
			}
			item.Allocations = allocations
			snapshot = plan.UnitCostSnapshot
		}

		// 7) Persistir la línea
		item.ProductID = targetProduct
		item.Quantity = targetQty
		item.UnitSalePrice = targetPrice
		item.UnitCostSnapshot = snapshot
		if err := store.SaleItems.Update(ctx, item); err != nil {
			return err
		}

		// 8) Total cacheado: total - línea anterior + línea nueva
		newTotal, err := adjustedTotal(sale, oldItemTotal, item.Total())
		if err != nil {
			return err
		}
		if err := store.Sales.UpdateTotalValue(ctx, sale.ID, newTotal); err != nil {
			return err
		}

		result, err = store.Sales.GetByID(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", result.ID).Str("sale_item_id", saleItemID).Msg("ítem de venta actualizado")
	return result, nil
}

// Delete elimina una línea (nunca la última) devolviendo sus asignaciones a los lotes.
func (uc *SaleItemUseCase) Delete(ctx context.Context, saleItemID string) (*entity.Sale, error) {
	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		item, sale, err := loadItemAndSale(ctx, store, saleItemID)
		if err != nil {
			return err
		}
		if sale.IsCanceled() {
			return domain.Conflict("no es posible eliminar un ítem de una venta cancelada")
		}
		if len(sale.Items) <= 1 {
			return domain.Conflict("no es posible eliminar el último ítem de la venta; cancele la venta en su lugar")
		}

		newTotal, err := adjustedTotal(sale, item.Total(), decimal.Zero)
		if err != nil {
			return err
		}

		if err := uc.ledger.Release(ctx, store, item.ProductID, item.Allocations); err != nil {
			return err
		}
		if err := store.SaleItems.DeleteAllocations(ctx, item.ID); err != nil {
			return err
		}
		if err := store.SaleItems.Delete(ctx, item.ID); err != nil {
			return err
		}
		if err := store.Sales.UpdateTotalValue(ctx, sale.ID, newTotal); err != nil {
			return err
		}

		result, err = store.Sales.GetByID(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", result.ID).Str("sale_item_id", saleItemID).Msg("ítem de venta eliminado")
	return result, nil
}

// loadItemAndSale carga la línea y su venta, bloqueando la cabecera para serializar ediciones.
func loadItemAndSale(ctx context.Context, store repository.Store, saleItemID string) (*entity.SaleItem, *entity.Sale, error) {
	item, err := store.SaleItems.GetByID(ctx, saleItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.NotFound("ítem de la venta")
	}
	sale, err := store.Sales.GetByIDForUpdate(ctx, item.SaleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.NotFound("venta")
	}
	return item, sale, nil
}

// adjustedTotal aplica la diferencia de una línea al total cacheado.
// Un total explícito menor que las líneas puede quedar negativo: en ese caso la edición se rechaza.
func adjustedTotal(sale *entity.Sale, oldItemTotal, newItemTotal decimal.Decimal) (decimal.Decimal, error) {
	total := sale.TotalValue.Sub(oldItemTotal).Add(newItemTotal)
	if total.IsNegative() {
		return decimal.Zero, domain.Conflict("el total de la venta quedaría negativo; ajuste primero el total de la venta")
	}
	return total, nil
}
