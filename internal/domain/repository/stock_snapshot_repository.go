package repository

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// StockSnapshotRepository define el puerto para la fila de saldo cacheado por
// producto. Usado dentro de transacciones para garantizar consistencia con el
// ledger de movimientos.
type StockSnapshotRepository interface {
	Get(productID string) (*entity.StockSnapshot, error)
	// ApplyChange aplica un incremento atómico con upsert: crea la fila con el
	// delta como saldo inicial si no existe (primer movimiento del producto).
	ApplyChange(productID string, change int64, at time.Time) error
	// Set fija el saldo en un valor absoluto (solo reconciliación).
	Set(productID string, currentStock int64, at time.Time) error
	// ListDrifted devuelve los IDs de producto cuyo snapshot difiere del stock
	// denormalizado del producto, o que no tienen snapshot.
	ListDrifted(limit int) ([]string, error)
}
