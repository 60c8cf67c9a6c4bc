package repository

import (
	"context"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura de clientes usado por ventas.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
