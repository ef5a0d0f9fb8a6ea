package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stockline/stockline-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el motor de estadísticas.
// Devuelve filas crudas; todo el cálculo ocurre en el pipeline de aplicación.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ListProducts devuelve los productos del usuario con el nombre de su categoría resuelto.
func (r *AnalyticsRepo) ListProducts(ctx context.Context, userID string) ([]repository.ProductRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.price, p.cost, p.stock, p.min_stock,
			COALESCE(p.category_id::text, ''), COALESCE(c.name, 'Sin categoría')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list product rows: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductRow
	for rows.Next() {
		var p repository.ProductRow
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
			&p.CategoryID, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListMovements devuelve los movimientos del usuario con fecha en [from, to).
func (r *AnalyticsRepo) ListMovements(ctx context.Context, userID string, from, to time.Time) ([]repository.MovementRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.product_id, COALESCE(p.name, ''), m.type, m.quantity, m.date
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE m.user_id = $1 AND m.date >= $2 AND m.date < $3`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list movement rows: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementRow
	for rows.Next() {
		var m repository.MovementRow
		if err := rows.Scan(&m.MovementID, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
