package repository

import "github.com/stockline/stockline-api/internal/domain/entity"

// OrderFilter filtros opcionales para el listado de órdenes.
// UserID siempre viene informado: las órdenes son por usuario.
type OrderFilter struct {
	UserID     string
	Status     string
	SupplierID string
}

// OrderRepository define el puerto de persistencia para órdenes de compra.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// Update persiste cabecera, ítems y el historial de estados completo.
	Update(order *entity.Order) error
	List(filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	Count(filter OrderFilter) (int, error)
	Delete(id string) error
}
