package entity

import "time"

// Estados de una categoría.
const (
	CategoryStatusActive   = "activa"
	CategoryStatusInactive = "inactiva"
)

// Category representa una categoría de productos (con campos de presentación para la UI).
type Category struct {
	ID          string
	Name        string // único
	Description string
	Color       string
	Icon        string
	Status      string // activa | inactiva
	Position    int    // orden de presentación
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
