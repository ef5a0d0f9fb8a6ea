package repository

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de
// movimientos. No hay Delete: el ledger es append-only y las correcciones se
// registran como movimientos de reversa.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProductAsc devuelve todos los movimientos del producto ordenados
	// por fecha ascendente (replay de reconciliación — sin paginar).
	ListByProductAsc(productID string) ([]*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	ListByUser(userID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// UpdateMeta actualiza solo los campos no contables: notas, documento de
	// referencia y verificación. Cantidad, tipo y fecha son inmutables.
	UpdateMeta(movement *entity.Movement) error
}
