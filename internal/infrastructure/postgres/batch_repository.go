package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, product_id, tax_invoice_number, purchase_quantity, current_quantity,
	unit_cost_price, expiration_date, purchase_date, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
// Los ajustes de current_quantity son UPDATE relativos con el invariante en el WHERE,
// respaldados por el CHECK de la tabla.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.ProductID, &b.TaxInvoiceNumber, &b.PurchaseQuantity, &b.CurrentQuantity,
		&b.UnitCostPrice, &b.ExpirationDate, &b.PurchaseDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un lote.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ProductID, b.TaxInvoiceNumber, b.PurchaseQuantity, b.CurrentQuantity,
		b.UnitCostPrice, b.ExpirationDate, b.PurchaseDate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert batch", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update persiste datos descriptivos y purchase_quantity. current_quantity no se toca aquí.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET tax_invoice_number = $2, purchase_quantity = $3, unit_cost_price = $4,
			expiration_date = $5, purchase_date = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.TaxInvoiceNumber, b.PurchaseQuantity, b.UnitCostPrice, b.ExpirationDate, b.PurchaseDate, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update batch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote. Si aún hay asignaciones que lo referencian devuelve ErrConflict.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete batch: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListSellable lotes vendibles en asOf, en orden FEFO, bloqueados hasta el fin de la transacción.
func (r *BatchRepo) ListSellable(ctx context.Context, productID string, asOf time.Time) ([]*entity.Batch, error) {
	query := `
		SELECT b.id, b.product_id, b.tax_invoice_number, b.purchase_quantity, b.current_quantity,
			b.unit_cost_price, b.expiration_date, b.purchase_date, b.created_at, b.updated_at
		FROM batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.product_id = $1
		  AND b.current_quantity > 0
		  AND b.expiration_date > $2
		  AND p.deleted_at IS NULL
		ORDER BY b.expiration_date ASC, b.id ASC
		FOR UPDATE OF b`
	rows, err := r.q.Query(ctx, query, productID, asOf)
	if err != nil {
		return nil, fmt.Errorf("list sellable batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListByProduct lotes del producto sin filtrar saldo ni vencimiento.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE product_id = $1 ORDER BY expiration_date ASC, id ASC`,
		productID,
	)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// SumCurrentByProduct suma current_quantity de todos los lotes del producto.
func (r *BatchRepo) SumCurrentByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_quantity), 0)::int FROM batches WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum batch quantities: %w", err)
	}
	return total, nil
}

// HasAllocations indica si alguna línea de venta fue financiada por el lote.
func (r *BatchRepo) HasAllocations(ctx context.Context, batchID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM allocation_sale_items WHERE batch_id = $1)`, batchID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check batch allocations: %w", err)
	}
	return exists, nil
}

// IncreaseQuantity suma qty sin superar purchase_quantity.
func (r *BatchRepo) IncreaseQuantity(ctx context.Context, batchID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE batches SET current_quantity = current_quantity + $2, updated_at = now()
		 WHERE id = $1 AND current_quantity + $2 <= purchase_quantity`,
		batchID, qty,
	)
	if err != nil {
		return mapWriteError("increase batch quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrViolation(ctx, batchID)
	}
	return nil
}

// DecreaseQuantity resta qty solo si hay saldo suficiente.
func (r *BatchRepo) DecreaseQuantity(ctx context.Context, batchID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE batches SET current_quantity = current_quantity - $2, updated_at = now()
		 WHERE id = $1 AND current_quantity >= $2`,
		batchID, qty,
	)
	if err != nil {
		return mapWriteError("decrease batch quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrViolation(ctx, batchID)
	}
	return nil
}

func (r *BatchRepo) missingOrViolation(ctx context.Context, batchID string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM batches WHERE id = $1)`, batchID).Scan(&exists); err != nil {
		return fmt.Errorf("check batch: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("batch %s: %w", batchID, domain.ErrInvariantViolation)
}
