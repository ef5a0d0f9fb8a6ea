package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un usuario.
// Stock es el saldo denormalizado: lo escriben exclusivamente el registrador de
// movimientos y el reconciliador, nunca los endpoints de edición de producto.
// Cost puede ser cero; la analítica asume 50% del precio cuando no está definido.
type Product struct {
	ID              string
	UserID          string // propietario del producto (multi-tenant por usuario)
	Name            string
	Description     string
	Price           decimal.Decimal
	Cost            decimal.Decimal
	Stock           int64 // unidades, nunca negativo en estados confirmados
	MinStock        int64 // umbral de reorden
	CategoryID      string
	SupplierID      string
	EntryDate       time.Time
	ExpirationDate  *time.Time // opcional; debe ser posterior a EntryDate
	LastStockUpdate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveCost devuelve el costo a usar en cálculos de ROI:
// el costo registrado, o 50% del precio si no hay costo.
func (p *Product) EffectiveCost() decimal.Decimal {
	if p.Cost.GreaterThan(decimal.Zero) {
		return p.Cost
	}
	return p.Price.Mul(decimal.NewFromFloat(0.5))
}
