package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Los repositorios se usan solo dentro de Store.Run, que ya tiene tomado el mutex.

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) ListIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.s.state.products))
	for id := range r.s.state.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *productRepo) IncreaseStock(_ context.Context, productID string, qty int) error {
	p, ok := r.s.state.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock += qty
	p.UpdatedAt = time.Now()
	r.s.state.products[productID] = p
	return nil
}

func (r *productRepo) DecreaseStock(_ context.Context, productID string, qty int) error {
	p, ok := r.s.state.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.CurrentStock < qty {
		return fmt.Errorf("stock %d < %d: %w", p.CurrentStock, qty, domain.ErrInvariantViolation)
	}
	p.CurrentStock -= qty
	p.UpdatedAt = time.Now()
	r.s.state.products[productID] = p
	return nil
}

func (r *productRepo) SetStock(_ context.Context, productID string, qty int) error {
	p, ok := r.s.state.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = qty
	p.UpdatedAt = time.Now()
	r.s.state.products[productID] = p
	return nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.state.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(_ context.Context, b *entity.Batch) error {
	if _, ok := r.s.state.products[b.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.state.batches[b.ID]; ok {
		return domain.ErrConflict
	}
	if b.CurrentQuantity < 0 || b.CurrentQuantity > b.PurchaseQuantity {
		return domain.ErrInvariantViolation
	}
	r.s.state.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.s.state.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *batchRepo) Update(_ context.Context, b *entity.Batch) error {
	cur, ok := r.s.state.batches[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.CurrentQuantity > b.PurchaseQuantity {
		return fmt.Errorf("current %d > purchase %d: %w", cur.CurrentQuantity, b.PurchaseQuantity, domain.ErrInvariantViolation)
	}
	cur.TaxInvoiceNumber = b.TaxInvoiceNumber
	cur.PurchaseQuantity = b.PurchaseQuantity
	cur.UnitCostPrice = b.UnitCostPrice
	cur.ExpirationDate = b.ExpirationDate
	cur.PurchaseDate = b.PurchaseDate
	cur.UpdatedAt = time.Now()
	r.s.state.batches[b.ID] = cur
	return nil
}

func (r *batchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.state.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.state.batches, id)
	return nil
}

func (r *batchRepo) ListSellable(_ context.Context, productID string, asOf time.Time) ([]*entity.Batch, error) {
	p, ok := r.s.state.products[productID]
	if !ok || p.IsDeleted() {
		return nil, nil
	}
	var out []*entity.Batch
	for _, b := range r.s.state.batches {
		if b.ProductID != productID || !b.SellableAt(asOf) {
			continue
		}
		cp := b
		out = append(out, &cp)
	}
	sortFEFO(out)
	return out, nil
}

func sortFEFO(batches []*entity.Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ExpirationDate.Equal(batches[j].ExpirationDate) {
			return batches[i].ExpirationDate.Before(batches[j].ExpirationDate)
		}
		return batches[i].ID < batches[j].ID
	})
}

func (r *batchRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.state.batches {
		if b.ProductID == productID {
			cp := b
			out = append(out, &cp)
		}
	}
	sortFEFO(out)
	return out, nil
}

func (r *batchRepo) SumCurrentByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	for _, b := range r.s.state.batches {
		if b.ProductID == productID {
			total += b.CurrentQuantity
		}
	}
	return total, nil
}

func (r *batchRepo) HasAllocations(_ context.Context, batchID string) (bool, error) {
	for _, allocs := range r.s.state.allocations {
		for _, a := range allocs {
			if a.BatchID == batchID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *batchRepo) IncreaseQuantity(_ context.Context, batchID string, qty int) error {
	b, ok := r.s.state.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	if b.CurrentQuantity+qty > b.PurchaseQuantity {
		return fmt.Errorf("current %d + %d > purchase %d: %w", b.CurrentQuantity, qty, b.PurchaseQuantity, domain.ErrInvariantViolation)
	}
	b.CurrentQuantity += qty
	b.UpdatedAt = time.Now()
	r.s.state.batches[batchID] = b
	return nil
}

func (r *batchRepo) DecreaseQuantity(_ context.Context, batchID string, qty int) error {
	b, ok := r.s.state.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	if b.CurrentQuantity < qty {
		return fmt.Errorf("current %d < %d: %w", b.CurrentQuantity, qty, domain.ErrInvariantViolation)
	}
	b.CurrentQuantity -= qty
	b.UpdatedAt = time.Now()
	r.s.state.batches[batchID] = b
	return nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.s.state.sales[sale.ID]; ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.state.customers[sale.CustomerID]; !ok {
		return domain.ErrNotFound
	}
	header := *sale
	header.Items = nil
	r.s.state.sales[sale.ID] = header
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	header, ok := r.s.state.sales[id]
	if !ok {
		return nil, nil
	}
	sale := header
	var rows []itemRow
	for _, row := range r.s.state.items {
		if row.item.SaleID == id {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	sale.Items = make([]*entity.SaleItem, 0, len(rows))
	for _, row := range rows {
		sale.Items = append(sale.Items, r.s.loadItem(row.item))
	}
	return &sale, nil
}

// GetByIDForUpdate equivale a GetByID: Run ya serializa las transacciones.
func (r *saleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) UpdateHeader(_ context.Context, sale *entity.Sale) error {
	cur, ok := r.s.state.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if sale.TotalValue.IsNegative() {
		return fmt.Errorf("total %s < 0: %w", sale.TotalValue, domain.ErrInvariantViolation)
	}
	cur.CustomerID = sale.CustomerID
	cur.Channel = sale.Channel
	cur.SaleDate = sale.SaleDate
	cur.Status = sale.Status
	cur.TotalValue = sale.TotalValue
	cur.UpdatedAt = time.Now()
	r.s.state.sales[sale.ID] = cur
	return nil
}

func (r *saleRepo) UpdateStatus(_ context.Context, id string, status entity.SaleStatus) error {
	cur, ok := r.s.state.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = status
	cur.UpdatedAt = time.Now()
	r.s.state.sales[id] = cur
	return nil
}

func (r *saleRepo) UpdateTotalValue(_ context.Context, id string, total decimal.Decimal) error {
	cur, ok := r.s.state.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	if total.IsNegative() {
		return fmt.Errorf("total %s < 0: %w", total, domain.ErrInvariantViolation)
	}
	cur.TotalValue = total
	cur.UpdatedAt = time.Now()
	r.s.state.sales[id] = cur
	return nil
}

type saleItemRepo struct{ s *Store }

func (r *saleItemRepo) Create(_ context.Context, item *entity.SaleItem) error {
	if _, ok := r.s.state.sales[item.SaleID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.state.items[item.ID]; ok {
		return domain.ErrConflict
	}
	row := *item
	row.Allocations = nil
	r.s.state.seq++
	r.s.state.items[item.ID] = itemRow{item: row, seq: r.s.state.seq}
	return nil
}

func (r *saleItemRepo) GetByID(_ context.Context, id string) (*entity.SaleItem, error) {
	row, ok := r.s.state.items[id]
	if !ok {
		return nil, nil
	}
	return r.s.loadItem(row.item), nil
}

func (r *saleItemRepo) Update(_ context.Context, item *entity.SaleItem) error {
	row, ok := r.s.state.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	row.item.ProductID = item.ProductID
	row.item.Quantity = item.Quantity
	row.item.UnitSalePrice = item.UnitSalePrice
	row.item.UnitCostSnapshot = item.UnitCostSnapshot
	r.s.state.items[item.ID] = row
	return nil
}

func (r *saleItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.state.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.state.items, id)
	delete(r.s.state.allocations, id)
	return nil
}

func (r *saleItemRepo) CreateAllocations(_ context.Context, saleItemID string, allocations []*entity.AllocationSaleItem) error {
	if _, ok := r.s.state.items[saleItemID]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range allocations {
		if _, ok := r.s.state.batches[a.BatchID]; !ok {
			return domain.ErrNotFound
		}
		if a.Quantity <= 0 {
			return domain.ErrInvariantViolation
		}
		cp := *a
		cp.SaleItemID = saleItemID
		r.s.state.allocations[saleItemID] = append(r.s.state.allocations[saleItemID], cp)
	}
	return nil
}

func (r *saleItemRepo) DeleteAllocations(_ context.Context, saleItemID string) error {
	delete(r.s.state.allocations, saleItemID)
	return nil
}

func (s *Store) loadItem(row entity.SaleItem) *entity.SaleItem {
	item := row
	allocs := s.state.allocations[row.ID]
	item.Allocations = make([]*entity.AllocationSaleItem, 0, len(allocs))
	for _, a := range allocs {
		cp := a
		item.Allocations = append(item.Allocations, &cp)
	}
	return &item
}
