package entity

import "github.com/shopspring/decimal"

// SaleItem línea de una venta.
// UnitCostSnapshot es el costo promedio ponderado capturado al asignar lotes; nunca se recalcula después.
type SaleItem struct {
	ID               string
	SaleID           string
	ProductID        string
	Quantity         int
	UnitSalePrice    decimal.Decimal
	UnitCostSnapshot decimal.Decimal
	Allocations      []*AllocationSaleItem
}

// MoneyScale decimales con que se almacenan precios y totales de venta.
const MoneyScale = 2

// RoundMoney redondea un importe de venta a MoneyScale decimales.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Total cantidad × precio unitario de venta.
func (i *SaleItem) Total() decimal.Decimal {
	return i.UnitSalePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AllocatedQuantity suma de las asignaciones registradas para la línea.
func (i *SaleItem) AllocatedQuantity() int {
	n := 0
	for _, a := range i.Allocations {
		n += a.Quantity
	}
	return n
}
