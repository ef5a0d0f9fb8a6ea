package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRow fila cruda de producto para el pipeline de estadísticas.
// Incluye el nombre de la categoría resuelto (LEFT JOIN) para la agrupación
// de valoración por categoría.
type ProductRow struct {
	ProductID    string
	Name         string
	Price        decimal.Decimal
	Cost         decimal.Decimal // cero si no está definido
	Stock        int64
	MinStock     int64
	CategoryID   string
	CategoryName string // "Sin categoría" cuando no hay referencia
}

// MovementRow fila cruda de movimiento para el pipeline de estadísticas.
type MovementRow struct {
	MovementID  string
	ProductID   string
	ProductName string
	Type        string // entry | exit
	Quantity    int64
	Date        time.Time
}

// AnalyticsRepository define las consultas de solo lectura que alimentan el
// motor de estadísticas. Las implementaciones no modifican datos; todo el
// cálculo (tendencias, ROI, predicción de reorden) ocurre en el use case
// como pipeline de funciones puras sobre estas filas.
type AnalyticsRepository interface {
	// ListProducts devuelve todos los productos del usuario con su categoría resuelta.
	ListProducts(ctx context.Context, userID string) ([]ProductRow, error)
	// ListMovements devuelve los movimientos del usuario con fecha en [from, to).
	ListMovements(ctx context.Context, userID string, from, to time.Time) ([]MovementRow, error)
}
