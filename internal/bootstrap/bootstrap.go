// Package bootstrap arma los casos de uso sobre el almacenamiento configurado (API y CLI).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/internal/application/sales"
	"github.com/Caio-C8/inventory-system/internal/infrastructure/memory"
	"github.com/Caio-C8/inventory-system/internal/infrastructure/postgres"
	"github.com/Caio-C8/inventory-system/pkg/config"
	"github.com/Caio-C8/inventory-system/pkg/logger"
)

// App casos de uso listos para usar y la función para liberar recursos.
type App struct {
	CreateSale    *sales.CreateSaleUseCase
	SaleItems     *sales.SaleItemUseCase
	SaleLifecycle *sales.SaleLifecycleUseCase
	Batches       *inventory.BatchUseCase
	Close         func()
}

// OpenTxRunner devuelve el TxRunner del driver configurado. Con postgres aplica el esquema.
func OpenTxRunner(ctx context.Context, cfg *config.Config, log *logger.Logger) (inventory.TxRunner, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(), func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewTxRunner(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("driver de almacenamiento desconocido: %s", cfg.Storage.Driver)
}

// New construye todos los casos de uso sobre un mismo TxRunner.
func New(txRunner inventory.TxRunner, log *logger.Logger) *App {
	ledger := inventory.NewLedger(log)
	allocator := inventory.NewAllocator()
	return &App{
		CreateSale:    sales.NewCreateSaleUseCase(txRunner, allocator, ledger, log),
		SaleItems:     sales.NewSaleItemUseCase(txRunner, allocator, ledger, log),
		SaleLifecycle: sales.NewSaleLifecycleUseCase(txRunner, ledger, log),
		Batches:       inventory.NewBatchUseCase(txRunner, ledger),
		Close:         func() {},
	}
}

// Open combina OpenTxRunner y New.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	txRunner, closeFn, err := OpenTxRunner(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app := New(txRunner, log)
	app.Close = closeFn
	return app, nil
}
