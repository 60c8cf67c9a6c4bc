package postgres

import (
	"context"
	"fmt"

	"github.com/Caio-C8/inventory-system/internal/domain"
	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta (las líneas van por SaleItemRepo).
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, channel, sale_date, status, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.Channel, s.SaleDate, string(s.Status), s.TotalValue, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas y asignaciones.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila de la cabecera (SELECT FOR UPDATE).
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, true)
}

func (r *SaleRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Sale, error) {
	query := `
		SELECT id, customer_id, channel, sale_date, status, total_value, created_at, updated_at
		FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Sale
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CustomerID, &s.Channel, &s.SaleDate, &status, &s.TotalValue, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.Status = entity.SaleStatus(status)

	items, err := NewSaleItemRepository(r.q).listBySale(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// UpdateHeader actualiza cliente, canal, fecha, estado y total.
func (r *SaleRepo) UpdateHeader(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $2, channel = $3, sale_date = $4, status = $5, total_value = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.Channel, s.SaleDate, string(s.Status), s.TotalValue, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return mapWriteError("update sale status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotalValue cambia solo el total cacheado.
func (r *SaleRepo) UpdateTotalValue(ctx context.Context, id string, total decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET total_value = $2, updated_at = now() WHERE id = $1`, id, total,
	)
	if err != nil {
		return mapWriteError("update sale total", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
