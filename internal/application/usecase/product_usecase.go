package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockline/stockline-api/internal/application/analytics"
	"github.com/stockline/stockline-api/internal/application/dto"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita aquí:
// nace con un movimiento de apertura y después solo lo mueven el registrador
// de movimientos y el reconciliador.
type ProductUseCase struct {
	repo          repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	recorder      *appinv.RecordMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	recorder *appinv.RecordMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, analyticsRepo: analyticsRepo, recorder: recorder}
}

// Create crea un producto. Si InitialStock > 0 se registra un movimiento de
// apertura: el ledger siempre explica el saldo, incluso el inicial.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ExpirationDate != nil {
		ref := time.Now()
		if in.EntryDate != nil {
			ref = *in.EntryDate
		}
		if !in.ExpirationDate.After(ref) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	entryDate := now
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}
	cost := decimal.Zero
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cost = *in.Cost
	}

	product := &entity.Product{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Cost:            cost,
		Stock:           0,
		MinStock:        in.MinStock,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		EntryDate:       entryDate,
		ExpirationDate:  in.ExpirationDate,
		LastStockUpdate: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 {
		mov, err := uc.recorder.RecordMovement(ctx, appinv.MovementInput{
			UserID:    userID,
			ProductID: product.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  in.InitialStock,
			Notes:     "Stock inicial",
		})
		if err != nil {
			return nil, err
		}
		product.Stock = mov.ResultingBalance
	}

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.ExpirationDate != nil {
		if !in.ExpirationDate.After(product.EntryDate) {
			return nil, domain.ErrInvalidInput
		}
		product.ExpirationDate = in.ExpirationDate
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// List lista los productos del usuario con paginación.
func (uc *ProductUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products: out,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un producto del usuario.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// Stats métricas básicas de los productos del usuario, calculadas con el
// mismo pipeline que el reporte de estadísticas.
func (uc *ProductUseCase) Stats(ctx context.Context, userID string) (*dto.ProductStatsDTO, error) {
	rows, err := uc.analyticsRepo.ListProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	general := analytics.GeneralStats(rows)
	return &dto.ProductStatsDTO{
		TotalProducts:      general.TotalProducts,
		LowStockProducts:   general.LowStockProducts,
		OutOfStockProducts: general.OutOfStockProducts,
		TotalStock:         general.TotalStock,
		InventoryValue:     general.StockValue,
		CriticalStockPct:   general.CriticalStockPct,
	}, nil
}

func (uc *ProductUseCase) owned(userID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
