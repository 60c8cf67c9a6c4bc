package postgres

import (
	"context"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID (incluye deshabilitados).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, code, barcode, sale_price, current_stock, deleted_at, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Code, &p.Barcode, &p.SalePrice, &p.CurrentStock, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListIDs lista los IDs de todos los productos (para resincronización masiva).
func (r *ProductRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IncreaseStock suma qty a current_stock de forma relativa.
func (r *ProductRepo) IncreaseStock(ctx context.Context, productID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`,
		productID, qty,
	)
	if err != nil {
		return mapWriteError("increase product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecreaseStock resta qty solo si current_stock >= qty; si no, ErrInvariantViolation.
func (r *ProductRepo) DecreaseStock(ctx context.Context, productID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = current_stock - $2, updated_at = now()
		 WHERE id = $1 AND current_stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return mapWriteError("decrease product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrViolation(ctx, productID)
	}
	return nil
}

// SetStock fija current_stock a un valor absoluto.
func (r *ProductRepo) SetStock(ctx context.Context, productID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		productID, qty,
	)
	if err != nil {
		return mapWriteError("set product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) missingOrViolation(ctx context.Context, productID string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("product %s: %w", productID, domain.ErrInvariantViolation)
}
