package sales

import (
	"context"
	"strings"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/shopspring/decimal"
)

// SaleLifecycleUseCase cancela, restaura y edita la cabecera de una venta.
type SaleLifecycleUseCase struct {
	txRunner TxRunner
	ledger   StockLedger
	log      *logger.Logger
}

// NewSaleLifecycleUseCase construye el caso de uso.
func NewSaleLifecycleUseCase(txRunner TxRunner, ledger StockLedger, log *logger.Logger) *SaleLifecycleUseCase {
	return &SaleLifecycleUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// UpdateSaleInput campos editables de la cabecera; nil = sin cambio.
type UpdateSaleInput struct {
	CustomerID *string
	Channel    *string
	SaleDate   *time.Time
	Status     *entity.SaleStatus
	TotalValue *decimal.Decimal
}

func (in UpdateSaleInput) isEmpty() bool {
	return in.CustomerID == nil && in.Channel == nil && in.SaleDate == nil &&
		in.Status == nil && in.TotalValue == nil
}

// Cancel devuelve a sus lotes todas las asignaciones registradas y marca la venta como CANCELED.
// Las asignaciones se conservan para poder restaurar la venta.
func (uc *SaleLifecycleUseCase) Cancel(ctx context.Context, saleID string) (*entity.Sale, error) {
	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		sale, err := lockSale(ctx, store, saleID)
		if err != nil {
			return err
		}
		if sale.IsCanceled() {
			return domain.Conflict("la venta ya está cancelada")
		}
		for _, item := range sale.Items {
			if err := uc.ledger.Release(ctx, store, item.ProductID, item.Allocations); err != nil {
				return err
			}
		}
		if err := store.Sales.UpdateStatus(ctx, sale.ID, entity.SaleStatusCanceled); err != nil {
			return err
		}
		result, err = store.Sales.GetByID(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", saleID).Msg("venta cancelada")
	return result, nil
}

// Restore vuelve a descontar exactamente las asignaciones registradas (sin revalidar vencimientos)
// y marca la venta como COMPLETED. Si algún lote ya no tiene saldo suficiente, la operación se revierte.
func (uc *SaleLifecycleUseCase) Restore(ctx context.Context, saleID string) (*entity.Sale, error) {
	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		sale, err := lockSale(ctx, store, saleID)
		if err != nil {
			return err
		}
		if !sale.IsCanceled() {
			return domain.Conflict("la venta ya está activa")
		}
		for _, item := range sale.Items {
			if err := uc.ledger.Consume(ctx, store, item.ProductID, item.Allocations); err != nil {
				return err
			}
		}
		if err := store.Sales.UpdateStatus(ctx, sale.ID, entity.SaleStatusCompleted); err != nil {
			return err
		}
		result, err = store.Sales.GetByID(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", saleID).Msg("venta restaurada")
	return result, nil
}

// UpdateHeader edita cliente, canal, fecha, estado o total sin tocar inventario.
// Entrar o salir de CANCELED solo es posible mediante Cancel/Restore.
func (uc *SaleLifecycleUseCase) UpdateHeader(ctx context.Context, saleID string, in UpdateSaleInput) (*entity.Sale, error) {
	if in.isEmpty() {
		return nil, domain.Invalid("ningún dato proporcionado para actualizar")
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.Invalid("estado de venta inválido")
	}
	if in.TotalValue != nil && in.TotalValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleDate != nil && in.SaleDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		sale, err := lockSale(ctx, store, saleID)
		if err != nil {
			return err
		}

		if in.Status != nil && *in.Status != sale.Status {
			if sale.IsCanceled() || *in.Status == entity.SaleStatusCanceled {
				return domain.Conflict("use cancelar o restaurar para cambiar el estado de una venta cancelada")
			}
			sale.Status = *in.Status
		}
		if in.CustomerID != nil && *in.CustomerID != sale.CustomerID {
			customer, err := store.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.NotFound("cliente")
			}
			if customer.IsDeleted() {
				return domain.Conflict("el cliente está deshabilitado")
			}
			sale.CustomerID = customer.ID
		}
		if in.Channel != nil {
			sale.Channel = strings.TrimSpace(*in.Channel)
		}
		if in.SaleDate != nil {
			sale.SaleDate = *in.SaleDate
		}
		if in.TotalValue != nil {
			sale.TotalValue = entity.RoundMoney(*in.TotalValue)
		}
		sale.UpdatedAt = time.Now()

		if err := store.Sales.UpdateHeader(ctx, sale); err != nil {
			return err
		}
		result, err = store.Sales.GetByID(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", saleID).Msg("cabecera de venta actualizada")
	return result, nil
}

func lockSale(ctx context.Context, store repository.Store, saleID string) (*entity.Sale, error) {
	sale, err := store.Sales.GetByIDForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta")
	}
	return sale, nil
}
