package dto

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required"`
	Address       string   `json:"address,omitempty"`
	ContactPerson string   `json:"contact_person,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ProductIDs    []string `json:"product_ids,omitempty"`
	CategoryIDs   []string `json:"category_ids,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/{id}.
type UpdateSupplierRequest struct {
	Name          *string  `json:"name,omitempty"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string  `json:"phone,omitempty"`
	Address       *string  `json:"address,omitempty"`
	ContactPerson *string  `json:"contact_person,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	ProductIDs    []string `json:"product_ids,omitempty"`
	CategoryIDs   []string `json:"category_ids,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ProductIDs    []string  `json:"product_ids,omitempty"`
	CategoryIDs   []string  `json:"category_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierListResponse listado de proveedores.
type SupplierListResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
	Page      PageResponse       `json:"page"`
}

// ToSupplierResponse convierte la entidad en su representación HTTP.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		ContactPerson: s.ContactPerson,
		Notes:         s.Notes,
		ProductIDs:    s.ProductIDs,
		CategoryIDs:   s.CategoryIDs,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
