package entity

import "time"

// Supplier representa un proveedor y sus referencias a productos y categorías.
type Supplier struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	Notes         string
	ProductIDs    []string
	CategoryIDs   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
