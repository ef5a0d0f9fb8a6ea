package dto

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID         string     `json:"product_id" validate:"required,uuid4_str"`
	Quantity          int64      `json:"quantity" validate:"required,gt=0"`
	Type              string     `json:"type" validate:"required,oneof=entry exit"`
	Date              *time.Time `json:"date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	ReferenceDocument string     `json:"reference_document,omitempty"`
}

// UpdateMovementRequest body para PUT /api/inventory/movements/{id}.
// Solo metadatos: si se envían quantity, type o date el movimiento se rechaza
// (el ledger es inmutable en sus campos contables).
type UpdateMovementRequest struct {
	Notes             *string    `json:"notes,omitempty"`
	ReferenceDocument *string    `json:"reference_document,omitempty"`
	Verified          *bool      `json:"verified,omitempty"`
	Quantity          *int64     `json:"quantity,omitempty"` // rechazado si viene
	Type              *string    `json:"type,omitempty"`     // rechazado si viene
	Date              *time.Time `json:"date,omitempty"`     // rechazado si viene
}

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	ProductName       string     `json:"product_name,omitempty"`
	UserID            string     `json:"user_id"`
	Type              string     `json:"type"`
	Quantity          int64      `json:"quantity"`
	Date              time.Time  `json:"date"`
	Notes             string     `json:"notes,omitempty"`
	ReferenceDocument string     `json:"reference_document,omitempty"`
	ResultingBalance  int64      `json:"resulting_balance"`
	Verified          bool       `json:"verified"`
	VerifiedBy        string     `json:"verified_by,omitempty"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ReconcileResponse resultado de una reconciliación manual.
type ReconcileResponse struct {
	ProductID     string    `json:"product_id"`
	PreviousStock int64     `json:"previous_stock"`
	CurrentStock  int64     `json:"current_stock"`
	Movements     int       `json:"movements"`
	Drifted       bool      `json:"drifted"`
	ReconciledAt  time.Time `json:"reconciled_at"`
}

// ToMovementResponse convierte la entidad en su representación HTTP.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		UserID:            m.UserID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		Date:              m.Date,
		Notes:             m.Notes,
		ReferenceDocument: m.ReferenceDocument,
		ResultingBalance:  m.ResultingBalance,
		Verified:          m.Verified,
		VerifiedBy:        m.VerifiedBy,
		VerifiedAt:        m.VerifiedAt,
		CreatedAt:         m.CreatedAt,
	}
}
