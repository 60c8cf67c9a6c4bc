package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caio-C8/inventory-system/internal/application/inventory"
	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/Caio-C8/inventory-system/internal/infrastructure/memory"
	"github.com/Caio-C8/inventory-system/pkg/logger"
)

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *inventory.Ledger, *inventory.BatchUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p1", Name: "Amoxicilina"})
	ledger := inventory.NewLedger(logger.Nop())
	return store, ledger, inventory.NewBatchUseCase(store, ledger)
}

func createBatch(t *testing.T, uc *inventory.BatchUseCase, qty int) *entity.Batch {
	t.Helper()
	b, err := uc.Create(context.Background(), inventory.CreateBatchInput{
		ProductID:        "p1",
		TaxInvoiceNumber: "NF-1",
		PurchaseQuantity: qty,
		UnitCostPrice:    decimal.NewFromInt(3),
		ExpirationDate:   today.AddDate(1, 0, 0),
		PurchaseDate:     today,
	})
	require.NoError(t, err)
	return b
}

func stockOf(t *testing.T, store *memory.Store) int {
	t.Helper()
	p, ok := store.Product("p1")
	require.True(t, ok)
	return p.CurrentStock
}

func TestLedger_RechazaSaldoNegativo(t *testing.T) {
	store, ledger, uc := setup(t)
	b := createBatch(t, uc, 4)

	err := store.Run(context.Background(), func(repos repository.Store) error {
		return ledger.DecreaseBatch(context.Background(), repos, b.ID, 5)
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	got, _ := store.Batch(b.ID)
	assert.Equal(t, 4, got.CurrentQuantity)
}

func TestLedger_RechazaSuperarCompra(t *testing.T) {
	store, ledger, uc := setup(t)
	b := createBatch(t, uc, 4)

	err := store.Run(context.Background(), func(repos repository.Store) error {
		return ledger.IncreaseBatch(context.Background(), repos, b.ID, 1)
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestLedger_CantidadNoPositiva(t *testing.T) {
	store, ledger, _ := setup(t)
	err := store.Run(context.Background(), func(repos repository.Store) error {
		return ledger.IncreaseStock(context.Background(), repos, "p1", 0)
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatch_CreateSumaStock(t *testing.T) {
	store, _, uc := setup(t)
	b := createBatch(t, uc, 10)

	assert.Equal(t, 10, b.CurrentQuantity)
	assert.Equal(t, 10, stockOf(t, store))

	_, err := uc.Create(context.Background(), inventory.CreateBatchInput{
		ProductID: "p9", TaxInvoiceNumber: "NF", PurchaseQuantity: 1,
		UnitCostPrice: decimal.NewFromInt(1), ExpirationDate: today, PurchaseDate: today,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatch_UpdateDesplazaSaldo(t *testing.T) {
	store, ledger, uc := setup(t)
	b := createBatch(t, uc, 10)
	// Simula 4 unidades vendidas.
	require.NoError(t, store.Run(context.Background(), func(repos repository.Store) error {
		if err := ledger.DecreaseBatch(context.Background(), repos, b.ID, 4); err != nil {
			return err
		}
		return ledger.DecreaseStock(context.Background(), repos, "p1", 4)
	}))

	purchase := 12
	updated, err := uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{PurchaseQuantity: &purchase})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.PurchaseQuantity)
	assert.Equal(t, 8, updated.CurrentQuantity)
	assert.Equal(t, 8, stockOf(t, store))

	purchase = 5
	updated, err = uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{PurchaseQuantity: &purchase})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentQuantity)
	assert.Equal(t, 1, stockOf(t, store))

	purchase = 3
	_, err = uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{PurchaseQuantity: &purchase})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, stockOf(t, store))
}

func TestBatch_UpdateCantidadActual(t *testing.T) {
	store, _, uc := setup(t)
	b := createBatch(t, uc, 10)

	current := 11
	_, err := uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{CurrentQuantity: &current})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	current = 6
	updated, err := uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{CurrentQuantity: &current})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.CurrentQuantity)
	assert.Equal(t, 6, stockOf(t, store))

	_, err = uc.Update(context.Background(), b.ID, inventory.UpdateBatchInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatch_DeleteRestaStock(t *testing.T) {
	store, _, uc := setup(t)
	b1 := createBatch(t, uc, 10)
	createBatch(t, uc, 5)

	require.NoError(t, uc.Delete(context.Background(), b1.ID))
	assert.Equal(t, 5, stockOf(t, store))
	_, ok := store.Batch(b1.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, uc.Delete(context.Background(), b1.ID), domain.ErrNotFound)
}

func TestBatch_ResyncCorrigeDesvio(t *testing.T) {
	store, _, uc := setup(t)
	createBatch(t, uc, 7)
	store.PutProduct(entity.Product{ID: "p1", CurrentStock: 99})

	n, err := uc.ResyncStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 7, stockOf(t, store))

	all, err := uc.ResyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 7}, all)

	_, err = uc.ResyncStock(context.Background(), "p9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocator_UsaLotesVendibles(t *testing.T) {
	store, _, uc := setup(t)
	createBatch(t, uc, 3)

	var plan int
	err := store.Run(context.Background(), func(repos repository.Store) error {
		p, err := inventory.NewAllocator().Allocate(context.Background(), repos.Batches, "p1", 2, today)
		if err != nil {
			return err
		}
		plan = len(p.Allocations)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, plan)

	err = store.Run(context.Background(), func(repos repository.Store) error {
		_, err := inventory.NewAllocator().Allocate(context.Background(), repos.Batches, "p1", 2, today.AddDate(2, 0, 0))
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestBatch_Lecturas(t *testing.T) {
	store, _, uc := setup(t)
	late := createBatch(t, uc, 2)
	store.PutBatch(entity.Batch{
		ID: "vencido", ProductID: "p1", PurchaseQuantity: 1,
		UnitCostPrice: decimal.NewFromInt(1), ExpirationDate: today.AddDate(0, -1, 0),
	})

	got, err := uc.Get(context.Background(), late.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentQuantity)

	_, err = uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Incluye lotes agotados y vencidos, en orden FEFO.
	list, err := uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "vencido", list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	_, err = uc.ListByProduct(context.Background(), "p9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
