package repository

import (
	"context"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRepository define el puerto de persistencia para la cabecera de venta.
// GetByID y GetByIDForUpdate devuelven la venta con sus ítems y asignaciones.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByIDForUpdate además bloquea la cabecera hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error
	UpdateTotalValue(ctx context.Context, id string, total decimal.Decimal) error
}

// SaleItemRepository define el puerto de persistencia para líneas de venta y sus asignaciones.
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
	// GetByID devuelve la línea con sus asignaciones.
	GetByID(ctx context.Context, id string) (*entity.SaleItem, error)
	Update(ctx context.Context, item *entity.SaleItem) error
	Delete(ctx context.Context, id string) error
	CreateAllocations(ctx context.Context, saleItemID string, allocations []*entity.AllocationSaleItem) error
	DeleteAllocations(ctx context.Context, saleItemID string) error
}
