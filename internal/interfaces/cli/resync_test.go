package cli_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/infrastructure/memory"
	"github.com/Caio-C8/inventory-system/internal/interfaces/cli"
	"github.com/Caio-C8/inventory-system/pkg/logger"
)

// newStore: p1 con stock desviado (99) y un lote de 6 unidades; p2 sin lotes.
func newStore() *memory.Store {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p1", CurrentStock: 99})
	store.PutProduct(entity.Product{ID: "p2", CurrentStock: 3})
	store.PutBatch(entity.Batch{
		ID: "b1", ProductID: "p1", PurchaseQuantity: 10, CurrentQuantity: 6,
		UnitCostPrice: decimal.NewFromInt(2), ExpirationDate: time.Now().AddDate(1, 0, 0),
	})
	return store
}

func opener(store *memory.Store) cli.Opener {
	return func(context.Context) (cli.StockResyncer, func(), error) {
		return inventory.NewBatchUseCase(store, inventory.NewLedger(logger.Nop())), func() {}, nil
	}
}

func TestResyncCommand_Product(t *testing.T) {
	store := newStore()
	cmd := cli.NewRootCmdForTest(opener(store))
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"resync", "--product", "p1"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "p1\t6")
	p, _ := store.Product("p1")
	assert.Equal(t, 6, p.CurrentStock)
}

func TestResyncCommand_All(t *testing.T) {
	store := newStore()
	cmd := cli.NewRootCmdForTest(opener(store))
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"resync", "--all"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "p1\t6")
	assert.Contains(t, out, "p2\t0")
	assert.Contains(t, out, "2 productos resincronizados")
}

func TestResyncCommand_RequiereUnaOpcion(t *testing.T) {
	for _, args := range [][]string{
		{"resync"},
		{"resync", "--all", "--product", "p1"},
	} {
		cmd := cli.NewRootCmdForTest(opener(newStore()))
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute(), "%v", args)
	}
}

func TestResyncCommand_ProductoInexistente(t *testing.T) {
	cmd := cli.NewRootCmdForTest(opener(newStore()))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"resync", "--product", "nope"})
	assert.Error(t, cmd.Execute())
}
