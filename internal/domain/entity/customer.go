package entity

import "time"

// Customer representa un cliente (solo lectura para el motor de ventas).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted indica si el cliente fue deshabilitado.
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}
