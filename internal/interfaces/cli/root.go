// Package cli implementa stockctl, la herramienta de mantenimiento de stock.
package cli

import (
	"context"

	"github.com/Caio-C8/inventory-system/internal/bootstrap"
	"github.com/Caio-C8/inventory-system/pkg/config"
	"github.com/Caio-C8/inventory-system/pkg/logger"
	"github.com/spf13/cobra"
)

// StockResyncer recalcula current_stock a partir de los lotes.
type StockResyncer interface {
	ResyncStock(ctx context.Context, productID string) (int, error)
	ResyncAll(ctx context.Context) (map[string]int, error)
}

// Opener abre el almacenamiento y devuelve el resincronizador y la función de cierre.
type Opener func(ctx context.Context) (StockResyncer, func(), error)

func newRootCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Mantenimiento del stock de productos",
		Long:          "stockctl repara el agregado current_stock de los productos a partir de sus lotes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newResyncCmd(open))
	return cmd
}

// NewRootCmdForTest devuelve el comando raíz con un Opener inyectado.
func NewRootCmdForTest(open Opener) *cobra.Command {
	return newRootCmd(open)
}

// Execute arma el comando con la configuración del entorno y lo ejecuta.
func Execute() error {
	return newRootCmd(openFromConfig).Execute()
}

func openFromConfig(ctx context.Context) (StockResyncer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "stockctl"})
	app, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app.Batches, app.Close, nil
}
