package repository

// Store agrupa los repositorios atados a una misma transacción (unidad de trabajo).
// Todo ajuste de stock y de asignaciones de una operación lógica usa el mismo Store.
type Store struct {
	Products  ProductRepository
	Customers CustomerRepository
	Batches   BatchRepository
	Sales     SaleRepository
	SaleItems SaleItemRepository
}
