package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockline/stockline-api/internal/domain/entity"
)

// OrderItemRequest línea de una orden en el body de creación.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4_str"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID   string             `json:"supplier_id" validate:"required,uuid4_str"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=pendiente confirmado en_proceso enviado entregado cancelado"`
	Comment string `json:"comment,omitempty"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderStatusChangeResponse entrada del historial de estados.
type OrderStatusChangeResponse struct {
	Status  string    `json:"status"`
	Date    time.Time `json:"date"`
	UserID  string    `json:"user_id"`
	Comment string    `json:"comment,omitempty"`
}

// OrderResponse representación HTTP de una orden de compra.
type OrderResponse struct {
	ID            string                      `json:"id"`
	OrderNumber   string                      `json:"order_number"`
	UserID        string                      `json:"user_id"`
	SupplierID    string                      `json:"supplier_id"`
	Items         []OrderItemResponse         `json:"items"`
	Total         decimal.Decimal             `json:"total"`
	OrderDate     time.Time                   `json:"order_date"`
	ExpectedDate  *time.Time                  `json:"expected_date,omitempty"`
	CurrentStatus string                      `json:"current_status"`
	StatusHistory []OrderStatusChangeResponse `json:"status_history"`
	Notes         string                      `json:"notes,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Page   PageResponse    `json:"page"`
}

// ToOrderResponse convierte la entidad en su representación HTTP.
func ToOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	history := make([]OrderStatusChangeResponse, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, OrderStatusChangeResponse{
			Status:  h.Status,
			Date:    h.Date,
			UserID:  h.UserID,
			Comment: h.Comment,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		SupplierID:    o.SupplierID,
		Items:         items,
		Total:         o.Total,
		OrderDate:     o.OrderDate,
		ExpectedDate:  o.ExpectedDate,
		CurrentStatus: o.CurrentStatus,
		StatusHistory: history,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
}
