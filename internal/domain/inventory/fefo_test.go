package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/inventory"
)

var baseDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func batch(id string, qty int, cost string, expiresInDays int) *entity.Batch {
	return &entity.Batch{
		ID:               id,
		ProductID:        "p1",
		PurchaseQuantity: qty,
		CurrentQuantity:  qty,
		UnitCostPrice:    decimal.RequireFromString(cost),
		ExpirationDate:   baseDate.AddDate(0, 0, expiresInDays),
	}
}

func TestPlanFEFO_ConsumePrimeroLoteQueVenceAntes(t *testing.T) {
	// Orden de entrada desordenado a propósito: el planificador ordena por vencimiento.
	candidates := []*entity.Batch{
		batch("e3", 5, "10", 30),
		batch("e1", 5, "10", 10),
		batch("e2", 5, "10", 20),
	}

	plan, err := inventory.PlanFEFO("p1", candidates, 8)
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)

	assert.Equal(t, "e1", plan.Allocations[0].BatchID)
	assert.Equal(t, 5, plan.Allocations[0].Quantity)
	assert.Equal(t, "e2", plan.Allocations[1].BatchID)
	assert.Equal(t, 3, plan.Allocations[1].Quantity)

	// El planificador es de solo lectura.
	for _, b := range candidates {
		assert.Equal(t, 5, b.CurrentQuantity, "el lote %s no debe modificarse", b.ID)
	}
}

func TestPlanFEFO_EmpateDeVencimientoOrdenaPorID(t *testing.T) {
	candidates := []*entity.Batch{
		batch("b", 4, "1", 10),
		batch("a", 4, "1", 10),
	}
	plan, err := inventory.PlanFEFO("p1", candidates, 5)
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "a", plan.Allocations[0].BatchID)
	assert.Equal(t, 4, plan.Allocations[0].Quantity)
	assert.Equal(t, "b", plan.Allocations[1].BatchID)
	assert.Equal(t, 1, plan.Allocations[1].Quantity)
}

func TestPlanFEFO_CostoPromedioPonderado(t *testing.T) {
	candidates := []*entity.Batch{
		batch("e1", 2, "10.00", 1),
		batch("e2", 10, "13.00", 2),
	}
	plan, err := inventory.PlanFEFO("p1", candidates, 4)
	require.NoError(t, err)
	// (2*10 + 2*13) / 4 = 11.5
	assert.True(t, plan.UnitCostSnapshot.Equal(decimal.RequireFromString("11.5")), "got %s", plan.UnitCostSnapshot)
}

func TestPlanFEFO_FaltanteReportaUnidadesRestantes(t *testing.T) {
	candidates := []*entity.Batch{
		batch("e1", 4, "1", 1),
		batch("e2", 6, "1", 2),
	}
	_, err := inventory.PlanFEFO("p1", candidates, 15)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Missing)
	assert.False(t, stockErr.NoBatches)
	assert.Contains(t, err.Error(), "faltan 5 unidades")
}

func TestPlanFEFO_SinLotesEsErrorEspecifico(t *testing.T) {
	_, err := inventory.PlanFEFO("p1", nil, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.True(t, stockErr.NoBatches)
	assert.Contains(t, err.Error(), "no hay lotes")
}

func TestPlanFEFO_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.PlanFEFO("p1", []*entity.Batch{batch("e1", 1, "1", 1)}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCostCalculator_CantidadCero(t *testing.T) {
	assert.True(t, inventory.CostCalculator(nil, 0).IsZero())
}
