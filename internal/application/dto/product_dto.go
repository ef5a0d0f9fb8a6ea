package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockline/stockline-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// InitialStock se acepta solo en la creación; después el stock únicamente
// cambia vía movimientos de inventario.
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required"`
	Description    string           `json:"description,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	InitialStock   int64            `json:"initial_stock" validate:"omitempty,min=0"`
	MinStock       int64            `json:"min_stock" validate:"omitempty,min=0"`
	CategoryID     string           `json:"category_id,omitempty" validate:"omitempty,uuid4_str"`
	SupplierID     string           `json:"supplier_id,omitempty" validate:"omitempty,uuid4_str"`
	EntryDate      *time.Time       `json:"entry_date,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/{id}. No incluye stock:
// esa columna solo la escriben el registrador de movimientos y el reconciliador.
type UpdateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	MinStock       *int64           `json:"min_stock,omitempty" validate:"omitempty,min=0"`
	CategoryID     *string          `json:"category_id,omitempty"`
	SupplierID     *string          `json:"supplier_id,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	Stock           int64           `json:"stock"`
	MinStock        int64           `json:"min_stock"`
	CategoryID      string          `json:"category_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	EntryDate       time.Time       `json:"entry_date"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	LastStockUpdate time.Time       `json:"last_stock_update"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// ProductStatsDTO estadísticas básicas de productos del usuario.
type ProductStatsDTO struct {
	TotalProducts      int             `json:"total_products"`
	LowStockProducts   int             `json:"low_stock_products"`
	OutOfStockProducts int             `json:"out_of_stock_products"`
	TotalStock         int64           `json:"total_stock"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	CriticalStockPct   decimal.Decimal `json:"critical_stock_pct"`
}

// ToProductResponse convierte la entidad en su representación HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Cost:            p.Cost,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		EntryDate:       p.EntryDate,
		ExpirationDate:  p.ExpirationDate,
		LastStockUpdate: p.LastStockUpdate,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
