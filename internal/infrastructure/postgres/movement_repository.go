package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// movementSelect incluye el nombre del producto resuelto por JOIN.
// verified_by es NULLable; se lee como ''.
const movementSelect = `m.id, m.product_id, COALESCE(p.name, ''), m.user_id, m.type, m.quantity,
	m.date, m.notes, m.reference_document, m.resulting_balance,
	m.verified, COALESCE(m.verified_by::text, ''), m.verified_at, m.created_at, m.updated_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// El ledger es append-only: no hay DELETE y el UPDATE solo toca metadatos.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento con su saldo resultante.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, user_id, type, quantity, date, notes,
			reference_document, resulting_balance, verified, verified_by, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.UserID, m.Type, m.Quantity, m.Date, m.Notes,
		m.ReferenceDocument, m.ResultingBalance, m.Verified, m.VerifiedBy, m.VerifiedAt,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementSelect + `
		FROM movements m LEFT JOIN products p ON p.id = m.product_id
		WHERE m.id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.ProductName, &m.UserID, &m.Type, &m.Quantity,
		&m.Date, &m.Notes, &m.ReferenceDocument, &m.ResultingBalance,
		&m.Verified, &m.VerifiedBy, &m.VerifiedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProductAsc devuelve el ledger completo del producto en orden de fecha
// ascendente (desempate por created_at). Es la consulta del replay.
func (r *MovementRepo) ListByProductAsc(productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementSelect + `
		FROM movements m LEFT JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1
		ORDER BY m.date ASC, m.created_at ASC`
	return r.list(query, productID)
}

// ListByProduct devuelve el kardex del producto, reciente primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementSelect + `
		FROM movements m LEFT JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1
		ORDER BY m.date DESC, m.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByUser devuelve los movimientos del usuario con rango opcional [from, to).
func (r *MovementRepo) ListByUser(userID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementSelect + `
		FROM movements m LEFT JOIN products p ON p.id = m.product_id
		WHERE m.user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += ` AND m.date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND m.date < $` + strconv.Itoa(len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY m.date DESC, m.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.list(query, args...)
}

// UpdateMeta actualiza solo notas, referencia y verificación.
func (r *MovementRepo) UpdateMeta(m *entity.Movement) error {
	query := `
		UPDATE movements SET notes = $2, reference_document = $3, verified = $4,
			verified_by = NULLIF($5, ''), verified_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Notes, m.ReferenceDocument, m.Verified, m.VerifiedBy, m.VerifiedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement meta: %w", err)
	}
	return nil
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName, &m.UserID, &m.Type, &m.Quantity,
			&m.Date, &m.Notes, &m.ReferenceDocument, &m.ResultingBalance,
			&m.Verified, &m.VerifiedBy, &m.VerifiedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
