package inventory

import (
	"context"

	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: movimiento, snapshot y stock
// denormalizado se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		snapRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// KardexPDFGenerator genera el reporte kardex (historial de movimientos) en PDF.
// La implementación Maroto vive en infraestructura.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, title string, movements []*entity.Movement) ([]byte, error)
}
