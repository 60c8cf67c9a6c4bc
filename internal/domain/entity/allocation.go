package entity

// AllocationSaleItem registra qué cantidad de qué lote financia una línea de venta.
// No se edita: se borra y se vuelve a crear como conjunto.
type AllocationSaleItem struct {
	ID         string
	SaleItemID string
	BatchID    string
	Quantity   int
}
