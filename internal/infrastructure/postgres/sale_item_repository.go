package postgres

import (
	"context"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
)

var _ repository.SaleItemRepository = (*SaleItemRepo)(nil)

// SaleItemRepo implementación de SaleItemRepository: líneas de venta y allocation_sale_items.
type SaleItemRepo struct {
	q Querier
}

// NewSaleItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleItemRepository(q Querier) *SaleItemRepo {
	return &SaleItemRepo{q: q}
}

// Create persiste una línea (sin asignaciones).
func (r *SaleItemRepo) Create(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_sale_price, unit_cost_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitSalePrice, it.UnitCostSnapshot,
	)
	if err != nil {
		return mapWriteError("insert sale item", err)
	}
	return nil
}

// GetByID obtiene una línea con sus asignaciones.
func (r *SaleItemRepo) GetByID(ctx context.Context, id string) (*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_sale_price, unit_cost_snapshot
		FROM sale_items WHERE id = $1`
	var it entity.SaleItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitSalePrice, &it.UnitCostSnapshot,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	allocs, err := r.listAllocations(ctx, `WHERE sale_item_id = $1`, id)
	if err != nil {
		return nil, err
	}
	it.Allocations = allocs[it.ID]
	return &it, nil
}

// Update persiste producto, cantidad, precio y snapshot de costo.
func (r *SaleItemRepo) Update(ctx context.Context, it *entity.SaleItem) error {
	query := `
		UPDATE sale_items SET product_id = $2, quantity = $3, unit_sale_price = $4, unit_cost_snapshot = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, it.ID, it.ProductID, it.Quantity, it.UnitSalePrice, it.UnitCostSnapshot)
	if err != nil {
		return mapWriteError("update sale item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea; sus asignaciones caen por ON DELETE CASCADE.
func (r *SaleItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateAllocations inserta las asignaciones de la línea.
func (r *SaleItemRepo) CreateAllocations(ctx context.Context, saleItemID string, allocations []*entity.AllocationSaleItem) error {
	query := `
		INSERT INTO allocation_sale_items (id, sale_item_id, batch_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, a := range allocations {
		if _, err := r.q.Exec(ctx, query, a.ID, saleItemID, a.BatchID, a.Quantity); err != nil {
			return mapWriteError("insert allocation", err)
		}
	}
	return nil
}

// DeleteAllocations elimina todas las asignaciones de la línea.
func (r *SaleItemRepo) DeleteAllocations(ctx context.Context, saleItemID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM allocation_sale_items WHERE sale_item_id = $1`, saleItemID); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}

// listBySale líneas de la venta en orden de creación, con sus asignaciones.
func (r *SaleItemRepo) listBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_sale_price, unit_cost_snapshot
		FROM sale_items WHERE sale_id = $1 ORDER BY position ASC`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitSalePrice, &it.UnitCostSnapshot); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	allocs, err := r.listAllocations(ctx,
		`WHERE sale_item_id IN (SELECT id FROM sale_items WHERE sale_id = $1)`, saleID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.Allocations = allocs[it.ID]
	}
	return items, nil
}

// listAllocations agrupa por sale_item_id las asignaciones que cumplen el filtro.
func (r *SaleItemRepo) listAllocations(ctx context.Context, where string, arg string) (map[string][]*entity.AllocationSaleItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_item_id, batch_id, quantity FROM allocation_sale_items `+where+` ORDER BY position ASC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.AllocationSaleItem)
	for rows.Next() {
		var a entity.AllocationSaleItem
		if err := rows.Scan(&a.ID, &a.SaleItemID, &a.BatchID, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		out[a.SaleItemID] = append(out[a.SaleItemID], &a)
	}
	return out, rows.Err()
}
