package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)

// StockSnapshotRepo implementación del puerto StockSnapshotRepository sobre
// PostgreSQL. La tabla tiene una fila única por producto (UNIQUE(product_id)).
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

// Get obtiene el snapshot del producto, o nil si aún no existe.
func (r *StockSnapshotRepo) Get(productID string) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	err := r.q.QueryRow(context.Background(),
		`SELECT product_id, current_stock, last_update FROM stock_snapshots WHERE product_id = $1`,
		productID,
	).Scan(&s.ProductID, &s.CurrentStock, &s.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// ApplyChange aplica un incremento atómico con upsert: si el producto no tiene
// snapshot, el delta es el saldo inicial.
func (r *StockSnapshotRepo) ApplyChange(productID string, change int64, at time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_snapshots (product_id, current_stock, last_update)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id)
		DO UPDATE SET current_stock = stock_snapshots.current_stock + $2, last_update = $3`,
		productID, change, at,
	)
	if err != nil {
		return fmt.Errorf("apply snapshot change: %w", err)
	}
	return nil
}

// Set fija el saldo en un valor absoluto (reconciliación).
func (r *StockSnapshotRepo) Set(productID string, currentStock int64, at time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_snapshots (product_id, current_stock, last_update)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id)
		DO UPDATE SET current_stock = $2, last_update = $3`,
		productID, currentStock, at,
	)
	if err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// ListDrifted devuelve los productos cuyo snapshot difiere del stock
// denormalizado, o que no tienen snapshot. Alimenta el barrido nocturno.
func (r *StockSnapshotRepo) ListDrifted(limit int) ([]string, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT p.id
		FROM products p
		LEFT JOIN stock_snapshots s ON s.product_id = p.id
		WHERE s.product_id IS NULL OR s.current_stock <> p.stock
		ORDER BY p.last_stock_update ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list drifted: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan drifted: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
