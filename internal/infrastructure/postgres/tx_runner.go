package postgres

import (
	"context"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/internal/application/sales"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure TxRunner implements inventory.TxRunner and sales.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con todos los repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	store := repository.Store{
		Products:  NewProductRepository(tx),
		Customers: NewCustomerRepository(tx),
		Batches:   NewBatchRepository(tx),
		Sales:     NewSaleRepository(tx),
		SaleItems: NewSaleItemRepository(tx),
	}

	if err := fn(store); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
