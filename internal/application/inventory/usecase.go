package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de inventario de forma transaccional,
// con bloqueo de fila del producto (SELECT FOR UPDATE) y Commit/Rollback. Es el
// único punto de escritura del stock junto con el reconciliador.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
// Quantity siempre positiva; el signo lo determina Type (entry | exit).
// Date opcional: si es nil se usa la hora del servidor.
type MovementInput struct {
	UserID            string
	ProductID         string
	Type              string
	Quantity          int64
	Date              *time.Time
	Notes             string
	ReferenceDocument string
}

// RecordMovement valida la entrada, inicia una transacción, bloquea la fila del
// producto y aplica el movimiento: verifica el snapshot antes de una salida
// (reconciliando en la misma tx si hay deriva), rechaza saldos negativos,
// persiste el movimiento con su saldo resultante y aplica el delta al snapshot
// y al stock denormalizado del producto.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.ProductID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(input.ProductID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		snapRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: serializa salidas concurrentes sobre el mismo producto.
		product, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.UserID != input.UserID {
			return domain.ErrForbidden
		}

		if input.Type == entity.MovementTypeExit {
			// Antes de descontar, verifica que el saldo cacheado coincida con el
			// stock del producto. Si hay deriva (o no existe snapshot), repara
			// desde el ledger dentro de esta misma transacción.
			snap, err := snapRepo.Get(input.ProductID)
			if err != nil {
				return err
			}
			if snap == nil || snap.CurrentStock != product.Stock {
				balance, _, err := reconcileLocked(movRepo, snapRepo, productRepo, product, now)
				if err != nil {
					return err
				}
				product.Stock = balance
			}
		}

		mov := &entity.Movement{
			ID:                uuid.New().String(),
			ProductID:         input.ProductID,
			ProductName:       product.Name,
			UserID:            input.UserID,
			Type:              input.Type,
			Quantity:          input.Quantity,
			Date:              date,
			Notes:             input.Notes,
			ReferenceDocument: input.ReferenceDocument,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		newBalance := product.Stock + mov.Change()
		if newBalance < 0 {
			return fmt.Errorf("%w. Disponible: %d", domain.ErrInsufficientStock, product.Stock)
		}
		mov.ResultingBalance = newBalance

		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := snapRepo.ApplyChange(input.ProductID, mov.Change(), now); err != nil {
			return err
		}
		if err := productRepo.ApplyStockChange(input.ProductID, mov.Change(), now); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Reverse registra el movimiento de compensación de uno existente: mismo
// producto y cantidad, tipo opuesto. El original nunca se borra; el ledger
// es append-only y la reversa pasa por las mismas reglas de saldo.
func (uc *RecordMovementUseCase) Reverse(ctx context.Context, userID, movementID string) (*entity.Movement, error) {
	original, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}
	if original.UserID != userID {
		return nil, domain.ErrForbidden
	}

	reversedType := entity.MovementTypeEntry
	if original.Type == entity.MovementTypeEntry {
		reversedType = entity.MovementTypeExit
	}
	return uc.RecordMovement(ctx, MovementInput{
		UserID:            userID,
		ProductID:         original.ProductID,
		Type:              reversedType,
		Quantity:          original.Quantity,
		Notes:             fmt.Sprintf("Reversa del movimiento %s", original.ID),
		ReferenceDocument: original.ReferenceDocument,
	})
}

// MetaUpdate campos editables de un movimiento ya registrado. Los punteros de
// Quantity, Type y Date existen solo para rechazar explícitamente intentos de
// modificación: cualquier valor no nil produce ErrImmutableMovement.
type MetaUpdate struct {
	Notes             *string
	ReferenceDocument *string
	Verified          *bool
	Quantity          *int64
	Type              *string
	Date              *time.Time
}

// UpdateMeta actualiza notas, documento de referencia y verificación de un
// movimiento. Cantidad, tipo y fecha son inmutables.
func (uc *RecordMovementUseCase) UpdateMeta(ctx context.Context, userID, movementID string, update MetaUpdate) (*entity.Movement, error) {
	if update.Quantity != nil || update.Type != nil || update.Date != nil {
		return nil, domain.ErrImmutableMovement
	}

	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.UserID != userID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	if update.Notes != nil {
		mov.Notes = *update.Notes
	}
	if update.ReferenceDocument != nil {
		mov.ReferenceDocument = *update.ReferenceDocument
	}
	if update.Verified != nil {
		mov.Verified = *update.Verified
		if *update.Verified {
			mov.VerifiedBy = userID
			mov.VerifiedAt = &now
		} else {
			mov.VerifiedBy = ""
			mov.VerifiedAt = nil
		}
	}
	mov.UpdatedAt = now

	if err := uc.movRepo.UpdateMeta(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// GetMovement devuelve un movimiento del usuario.
func (uc *RecordMovementUseCase) GetMovement(ctx context.Context, userID, movementID string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return mov, nil
}

// ListMovements devuelve los movimientos del usuario, con filtro opcional de
// rango de fechas [from, to) y paginación.
func (uc *RecordMovementUseCase) ListMovements(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.movRepo.ListByUser(userID, from, to, limit, offset)
}

// ListProductMovements devuelve el kardex de un producto del usuario.
func (uc *RecordMovementUseCase) ListProductMovements(ctx context.Context, userID, productID string, limit, offset int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}
