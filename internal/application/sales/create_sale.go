package sales

import (
	"context"
	"strings"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleUseCase crea una venta y descuenta los lotes asignados en una sola transacción.
type CreateSaleUseCase struct {
	txRunner  TxRunner
	allocator BatchAllocator
	ledger    StockLedger
	log       *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, allocator BatchAllocator, ledger StockLedger, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:  txRunner,
		allocator: allocator,
		ledger:    ledger,
		log:       log,
	}
}

// CreateSaleInput entrada para crear una venta.
// TotalValue positivo se respeta tal cual; cero calcula Σ(cantidad × precio).
type CreateSaleInput struct {
	CustomerID string
	Channel    string
	SaleDate   time.Time
	Status     entity.SaleStatus
	TotalValue decimal.Decimal
	Items      []CreateSaleItemInput
}

// CreateSaleItemInput línea solicitada.
type CreateSaleItemInput struct {
	ProductID     string
	Quantity      int
	UnitSalePrice decimal.Decimal
}

// Create valida cliente y productos, asigna lotes FEFO a la fecha de la venta y persiste
// cabecera, líneas y asignaciones; luego descuenta lotes y stock. Cualquier error revierte todo.
func (uc *CreateSaleUseCase) Create(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	status := in.Status
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	if !status.Valid() || status == entity.SaleStatusCanceled {
		return nil, domain.Invalid("estado de venta inválido")
	}
	if in.SaleDate.IsZero() {
		in.SaleDate = time.Now()
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Channel:    strings.TrimSpace(in.Channel),
		SaleDate:   in.SaleDate,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		// 1) Cliente
		customer, err := store.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFound("cliente")
		}
		if customer.IsDeleted() {
			return domain.Conflict("el cliente está deshabilitado")
		}

		// 2) Al menos un ítem, sin productos repetidos
		if len(in.Items) == 0 {
			return domain.Invalid("la venta debe tener al menos un ítem")
		}
		seen := make(map[string]bool, len(in.Items))
		for _, item := range in.Items {
			if item.ProductID == "" || item.Quantity <= 0 || item.UnitSalePrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			if seen[item.ProductID] {
				return domain.Invalid("el producto está repetido en la venta")
			}
			seen[item.ProductID] = true
		}

		// 3) Asignación FEFO por ítem; un faltante aborta la venta completa
		computedTotal := decimal.Zero
		for _, item := range in.Items {
			product, err := store.Products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFound("producto")
			}
			if product.IsDeleted() {
				return domain.Conflict("el producto está deshabilitado")
			}
			plan, err := uc.allocator.Allocate(ctx, store.Batches, item.ProductID, item.Quantity, in.SaleDate)
			if err != nil {
				return err
			}
			saleItem := &entity.SaleItem{
				ID:               uuid.New().String(),
				SaleID:           sale.ID,
				ProductID:        item.ProductID,
				Quantity:         item.Quantity,
				UnitSalePrice:    entity.RoundMoney(item.UnitSalePrice),
				UnitCostSnapshot: plan.UnitCostSnapshot,
			}
			saleItem.Allocations = toAllocations(saleItem.ID, plan)
			sale.Items = append(sale.Items, saleItem)
			computedTotal = computedTotal.Add(saleItem.Total())
		}

		// 4) Total: explícito si es positivo, si no el calculado
		sale.TotalValue = computedTotal
		if in.TotalValue.GreaterThan(decimal.Zero) {
			sale.TotalValue = entity.RoundMoney(in.TotalValue)
		}

		// 5) Persistencia: cabecera, líneas, asignaciones
		if err := store.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := store.SaleItems.Create(ctx, item); err != nil {
				return err
			}
			if err := store.SaleItems.CreateAllocations(ctx, item.ID, item.Allocations); err != nil {
				return err
			}
		}

		// 6) Descuento de lotes y stock del producto
		for _, item := range sale.Items {
			if err := uc.ledger.Consume(ctx, store, item.ProductID, item.Allocations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int("items", len(sale.Items)).
		Str("total_value", sale.TotalValue.StringFixed(2)).
		Msg("venta creada")
	return sale, nil
}

// GetSale obtiene una venta con sus líneas y asignaciones.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		sale, err = store.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
