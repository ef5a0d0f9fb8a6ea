package inventory

import (
	"context"
	"time"

	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	domaininv "github.com/stockline/stockline-api/internal/domain/inventory"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// ReconcileUseCase repara la deriva entre el ledger de movimientos (fuente de
// verdad) y los saldos derivados (snapshot y stock denormalizado del producto).
// Es idempotente: ejecutarlo dos veces seguidas deja el mismo valor.
type ReconcileUseCase struct {
	txRunner TxRunner
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner}
}

// ReconcileResult resultado de una reconciliación de producto.
type ReconcileResult struct {
	ProductID     string
	PreviousStock int64
	Balance       int64
	Movements     int
	Drifted       bool
	ReconciledAt  time.Time
}

// Reconcile recalcula el saldo autoritativo de un producto plegando su ledger
// completo y fija snapshot y stock del producto en ese valor, todo dentro de
// una transacción con la fila del producto bloqueada.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, userID, productID string) (*ReconcileResult, error) {
	var result *ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		snapRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if userID != "" && product.UserID != userID {
			return domain.ErrForbidden
		}

		previous := product.Stock
		now := time.Now()
		balance, count, err := reconcileLocked(movRepo, snapRepo, productRepo, product, now)
		if err != nil {
			return err
		}
		result = &ReconcileResult{
			ProductID:     productID,
			PreviousStock: previous,
			Balance:       balance,
			Movements:     count,
			Drifted:       previous != balance,
			ReconciledAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reconcileLocked repara snapshot y stock del producto dentro de una transacción
// que ya tiene la fila del producto bloqueada. Requiere que el caller haya hecho
// GetByIDForUpdate antes de llamar.
//
// Si el producto no tiene movimientos (stock inicial asignado al crearlo), el
// stock del producto es el valor autoritativo y el snapshot se alinea a él.
// Con movimientos, el saldo autoritativo es el replay del ledger desde cero.
func reconcileLocked(
	movRepo repository.MovementRepository,
	snapRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	now time.Time,
) (int64, int, error) {
	movements, err := movRepo.ListByProductAsc(product.ID)
	if err != nil {
		return 0, 0, err
	}

	balance := product.Stock
	if len(movements) > 0 {
		balance = domaininv.ReplayBalance(movements)
		if err := productRepo.SetStock(product.ID, balance, now); err != nil {
			return 0, 0, err
		}
	}
	if err := snapRepo.Set(product.ID, balance, now); err != nil {
		return 0, 0, err
	}
	return balance, len(movements), nil
}
