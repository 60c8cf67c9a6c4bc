package inventory

import "github.com/shopspring/decimal"

// costScale decimales del costo unitario capturado en la línea de venta.
const costScale = 4

// CostCalculator implementa el costo promedio ponderado de una salida financiada por varios lotes.
// CostoUnitario = Σ(CantTomada * CostoLote) / CantidadTotal
func CostCalculator(allocations []PlannedAllocation, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.UnitCost.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total.Div(decimal.NewFromInt(int64(quantity))).Round(costScale)
}
