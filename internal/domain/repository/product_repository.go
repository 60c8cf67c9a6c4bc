package repository

import (
	"context"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los ajustes de stock son relativos y atómicos; DecreaseStock nunca deja el agregado negativo
// (devuelve domain.ErrInvariantViolation en ese caso).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListIDs(ctx context.Context) ([]string, error)
	IncreaseStock(ctx context.Context, productID string, qty int) error
	DecreaseStock(ctx context.Context, productID string, qty int) error
	SetStock(ctx context.Context, productID string, qty int) error
}
