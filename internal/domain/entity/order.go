package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una orden de compra.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusConfirmed = "confirmado"
	OrderStatusInProcess = "en_proceso"
	OrderStatusShipped   = "enviado"
	OrderStatusDelivered = "entregado"
	OrderStatusCancelled = "cancelado"
)

// ValidOrderStatus indica si el estado es uno de los soportados.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProcess,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem línea de una orden de compra.
type OrderItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
}

// OrderStatusChange entrada del historial de estados de la orden.
type OrderStatusChange struct {
	Status  string
	Date    time.Time
	UserID  string
	Comment string
}

// Order representa una orden de compra a un proveedor.
// El historial de estados es append-only; CurrentStatus siempre refleja
// la última entrada del historial.
type Order struct {
	ID            string
	OrderNumber   string // único, generado: ORD-<ts>-<rand>
	UserID        string
	SupplierID    string
	Items         []OrderItem
	Total         decimal.Decimal
	OrderDate     time.Time
	ExpectedDate  *time.Time
	CurrentStatus string
	StatusHistory []OrderStatusChange
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
