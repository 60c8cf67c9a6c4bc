package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Caio-C8/inventory-system/internal/domain"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	// id que no es UUID: la fila no puede existir
	assert.True(t, isNoRows(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isNoRows(errors.New("conexión cerrada")))
}

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "check", err: &pgconn.PgError{Code: "23514"}, want: domain.ErrInvariantViolation},
		{name: "único", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrConflict},
		{name: "clave foránea", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrNotFound},
		{name: "id mal formado", err: &pgconn.PgError{Code: "22P02"}, want: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError("op", tt.err), tt.want)
		})
	}

	other := errors.New("timeout")
	err := mapWriteError("op", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
