package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Estadísticas de inventario ────────────────────────────────────────────────
// Los porcentajes llegan redondeados a 2 decimales (el redondeo es asunto de
// presentación: las fórmulas internas trabajan sin redondear).

// GeneralStatsDTO métricas globales del inventario del usuario.
type GeneralStatsDTO struct {
	TotalProducts      int             `json:"total_products"`
	LowStockProducts   int             `json:"low_stock_products"` // stock <= min_stock
	OutOfStockProducts int             `json:"out_of_stock_products"`
	TotalStock         int64           `json:"total_stock"`
	StockValue         decimal.Decimal `json:"stock_value"` // Σ precio × stock
	CriticalStockPct   decimal.Decimal `json:"critical_stock_pct"`
}

// MovementWindowDTO conteos y cantidades de movimientos en una ventana de 30 días.
type MovementWindowDTO struct {
	Total        int   `json:"total"`
	EntriesCount int   `json:"entries_count"`
	ExitsCount   int   `json:"exits_count"`
	EntriesQty   int64 `json:"entries_qty"`
	ExitsQty     int64 `json:"exits_qty"`
}

// TrendsDTO variación porcentual de la ventana actual contra la anterior (30–60 días).
type TrendsDTO struct {
	MovementsChangePct decimal.Decimal `json:"movements_change_pct"`
	EntriesChangePct   decimal.Decimal `json:"entries_change_pct"`
	ExitsChangePct     decimal.Decimal `json:"exits_change_pct"`
}

// TopMovedProductDTO producto entre los 5 con más unidades movidas en 30 días.
type TopMovedProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalQty    int64  `json:"total_qty"`
	EntriesQty  int64  `json:"entries_qty"`
	ExitsQty    int64  `json:"exits_qty"`
}

// CategoryValuationDTO valoración de stock agrupada por categoría.
type CategoryValuationDTO struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Products     int             `json:"products"`
	TotalStock   int64           `json:"total_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// ReorderPredictionDTO predicción de días hasta alcanzar el umbral de reorden.
type ReorderPredictionDTO struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	CurrentStock     int64           `json:"current_stock"`
	MinStock         int64           `json:"min_stock"`
	AvgDailyUsage    decimal.Decimal `json:"avg_daily_usage"`
	DaysUntilReorder decimal.Decimal `json:"days_until_reorder"`
}

// ProductROIDTO retorno sobre el costo de las unidades vendidas en 30 días.
type ProductROIDTO struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	TotalExits     int64           `json:"total_exits"`
	TotalExitValue decimal.Decimal `json:"total_exit_value"`
	ROIPct         decimal.Decimal `json:"roi_pct"`
}

// ROIStatsDTO resumen de ROI: promedio simple y top 5 productos.
type ROIStatsDTO struct {
	AvgROI      decimal.Decimal `json:"avg_roi"`
	TopProducts []ProductROIDTO `json:"top_roi_products"`
}

// StatisticsReport respuesta completa de GET /api/inventory/statistics.
type StatisticsReport struct {
	General            GeneralStatsDTO        `json:"general"`
	Movements          MovementWindowDTO      `json:"movements"`
	PreviousMovements  MovementWindowDTO      `json:"previous_movements"`
	Trends             TrendsDTO              `json:"trends"`
	TopMoved           []TopMovedProductDTO   `json:"top_moved"`
	Categories         []CategoryValuationDTO `json:"categories"`
	ReorderPredictions []ReorderPredictionDTO `json:"reorder_predictions"`
	ROI                ROIStatsDTO            `json:"roi"`
	GeneratedAt        time.Time              `json:"generated_at"`
}
