package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Una orden son tres tablas: cabecera, ítems y el historial de estados
// (append-only, igual que el ledger de movimientos).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera, los ítems y el estado inicial.
func (r *OrderRepo) Create(o *entity.Order) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, order_number, user_id, supplier_id, total, order_date,
			expected_date, current_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.OrderNumber, o.UserID, o.SupplierID, o.Total, o.OrderDate,
		o.ExpectedDate, o.CurrentStatus, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	if err := r.insertItems(ctx, o); err != nil {
		return err
	}
	return r.insertHistory(ctx, o.ID, o.StatusHistory)
}

// Update reescribe ítems e historial completos junto con la cabecera.
func (r *OrderRepo) Update(o *entity.Order) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier_id = $2, total = $3, expected_date = $4,
			current_status = $5, notes = $6, updated_at = $7
		WHERE id = $1`,
		o.ID, o.SupplierID, o.Total, o.ExpectedDate, o.CurrentStatus, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	if err := r.insertItems(ctx, o); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_status_history WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("clear order history: %w", err)
	}
	return r.insertHistory(ctx, o.ID, o.StatusHistory)
}

func (r *OrderRepo) insertItems(ctx context.Context, o *entity.Order) error {
	for i, item := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (order_id, position, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, i, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) insertHistory(ctx context.Context, orderID string, history []entity.OrderStatusChange) error {
	for i, h := range history {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_status_history (order_id, position, status, date, user_id, comment)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			orderID, i, h.Status, h.Date, h.UserID, h.Comment,
		)
		if err != nil {
			return fmt.Errorf("insert order status: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con ítems e historial.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		SELECT id, order_number, user_id, supplier_id, total, order_date, expected_date,
			current_status, notes, created_at, updated_at
		FROM purchase_orders WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.SupplierID, &o.Total, &o.OrderDate,
		&o.ExpectedDate, &o.CurrentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadDetails(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) loadDetails(ctx context.Context, o *entity.Order) error {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, quantity, unit_price, subtotal
		FROM purchase_order_items WHERE order_id = $1 ORDER BY position`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	hrows, err := r.q.Query(ctx, `
		SELECT status, date, user_id, comment
		FROM purchase_order_status_history WHERE order_id = $1 ORDER BY position`, o.ID)
	if err != nil {
		return fmt.Errorf("load order history: %w", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		var h entity.OrderStatusChange
		if err := hrows.Scan(&h.Status, &h.Date, &h.UserID, &h.Comment); err != nil {
			return fmt.Errorf("scan order status: %w", err)
		}
		o.StatusHistory = append(o.StatusHistory, h)
	}
	return hrows.Err()
}

// List lista órdenes del usuario con filtros opcionales, recientes primero.
func (r *OrderRepo) List(filter repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()
	query := `
		SELECT id, order_number, user_id, supplier_id, total, order_date, expected_date,
			current_status, notes, created_at, updated_at
		FROM purchase_orders WHERE user_id = $1`
	args := []any{filter.UserID}
	query, args = appendOrderFilters(query, args, filter)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY order_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.SupplierID, &o.Total, &o.OrderDate,
			&o.ExpectedDate, &o.CurrentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		if err := r.loadDetails(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Count cuenta las órdenes que cumplen el filtro.
func (r *OrderRepo) Count(filter repository.OrderFilter) (int, error) {
	query := `SELECT COUNT(*) FROM purchase_orders WHERE user_id = $1`
	args := []any{filter.UserID}
	query, args = appendOrderFilters(query, args, filter)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

func appendOrderFilters(query string, args []any, filter repository.OrderFilter) (string, []any) {
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND current_status = $` + strconv.Itoa(len(args))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += ` AND supplier_id = $` + strconv.Itoa(len(args))
	}
	return query, args
}

// Delete elimina la orden; ítems e historial caen por FK ON DELETE CASCADE.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
