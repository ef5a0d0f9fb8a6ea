package repository

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// ApplyStockChange y SetStock son exclusivos del motor de inventario:
// Update nunca toca la columna stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar salidas concurrentes sobre el mismo producto.
	GetByIDForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ApplyStockChange aplica un incremento atómico (stock = stock + change)
	// y actualiza last_stock_update.
	ApplyStockChange(productID string, change int64, at time.Time) error
	// SetStock fija el stock en un valor absoluto (solo reconciliación).
	SetStock(productID string, stock int64, at time.Time) error
	ListByUser(userID string, limit, offset int) ([]*entity.Product, error)
	CountByUser(userID string) (int, error)
	Delete(id string) error
}
