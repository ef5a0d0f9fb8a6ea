package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, description, price, cost, stock, min_stock,
	category_id, supplier_id, entry_date, expiration_date, last_stock_update, created_at, updated_at`

// category_id y supplier_id son NULLables; se leen como '' para el dominio.
const productSelect = `id, user_id, name, description, price, cost, stock, min_stock,
	COALESCE(category_id::text, ''), COALESCE(supplier_id::text, ''),
	entry_date, expiration_date, last_stock_update, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Name, product.Description,
		product.Price, product.Cost, product.Stock, product.MinStock,
		product.CategoryID, product.SupplierID,
		product.EntryDate, product.ExpirationDate, product.LastStockUpdate,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT ` + productSelect + ` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productSelect+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
		&p.CategoryID, &p.SupplierID, &p.EntryDate, &p.ExpirationDate, &p.LastStockUpdate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables. Nunca toca la columna stock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, cost = $5, min_stock = $6,
			category_id = NULLIF($7, ''), supplier_id = NULLIF($8, ''), expiration_date = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Cost,
		product.MinStock, product.CategoryID, product.SupplierID, product.ExpirationDate,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ApplyStockChange aplica un incremento atómico al stock denormalizado.
func (r *ProductRepo) ApplyStockChange(productID string, change int64, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, last_stock_update = $3, updated_at = $3 WHERE id = $1`,
		productID, change, at,
	)
	if err != nil {
		return fmt.Errorf("apply stock change: %w", err)
	}
	return nil
}

// SetStock fija el stock en un valor absoluto (reconciliación).
func (r *ProductRepo) SetStock(productID string, stock int64, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, last_stock_update = $3, updated_at = $3 WHERE id = $1`,
		productID, stock, at,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// ListByUser lista productos del usuario con paginación.
func (r *ProductRepo) ListByUser(userID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productSelect + `
		FROM products WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
			&p.CategoryID, &p.SupplierID, &p.EntryDate, &p.ExpirationDate, &p.LastStockUpdate,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// CountByUser cuenta los productos del usuario.
func (r *ProductRepo) CountByUser(userID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Delete elimina el producto, su snapshot y su historial de movimientos.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
