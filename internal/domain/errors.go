package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrInvariantViolation indica un ajuste de cantidades que dejaría un lote o producto
	// fuera de rango. Es un error de integridad, no de entrada del usuario.
	ErrInvariantViolation = errors.New("violación de invariante de inventario")
)

// RejectedError rechazo por precondición con un motivo legible.
// Unwrap devuelve ErrInvalidInput o ErrConflict según el tipo de precondición.
type RejectedError struct {
	Kind   error
	Reason string
}

func (e *RejectedError) Error() string { return e.Reason }

func (e *RejectedError) Unwrap() error { return e.Kind }

// Invalid rechazo por datos de entrada (lista vacía, payload sin campos, duplicados).
func Invalid(reason string) error {
	return &RejectedError{Kind: ErrInvalidInput, Reason: reason}
}

// Conflict rechazo por estado actual (venta cancelada, último ítem, doble cancelación).
func Conflict(reason string) error {
	return &RejectedError{Kind: ErrConflict, Reason: reason}
}

// NotFound error de recurso inexistente con detalle.
func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// InsufficientStockError falta de stock al asignar lotes para un producto.
// NoBatches distingue "no existe ningún lote vendible" del faltante parcial (Missing unidades).
type InsufficientStockError struct {
	ProductID string
	Requested int
	Missing   int
	NoBatches bool
}

func (e *InsufficientStockError) Error() string {
	if e.NoBatches {
		return fmt.Sprintf("no hay lotes disponibles para el producto %s", e.ProductID)
	}
	return fmt.Sprintf("stock insuficiente para completar la venta: faltan %d unidades", e.Missing)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
