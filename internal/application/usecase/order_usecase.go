package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/application/dto"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// allowedTransitions máquina de estados de la orden. Entregado y cancelado
// son terminales.
var allowedTransitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusInProcess, entity.OrderStatusCancelled},
	entity.OrderStatusInProcess: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:   {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
}

// OrderUseCase casos de uso de órdenes de compra. Al marcar una orden como
// entregada se registran movimientos de entrada por cada ítem: la recepción
// de mercancía pasa por el mismo motor que cualquier otro movimiento.
type OrderUseCase struct {
	repo         repository.OrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	recorder     *appinv.RecordMovementUseCase
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.OrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	recorder *appinv.RecordMovementUseCase,
) *OrderUseCase {
	return &OrderUseCase{repo: repo, supplierRepo: supplierRepo, productRepo: productRepo, recorder: recorder}
}

// newOrderNumber genera un número legible y único en la práctica: ORD-<ts>-<rand>.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%04d", now.Unix(), rand.Intn(10000))
}

// Create crea una orden en estado pendiente. El precio unitario por defecto es
// el precio actual del producto; los subtotales y el total se calculan aquí.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	items := make([]entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.UserID != userID {
			return nil, domain.ErrForbidden
		}
		price := it.UnitPrice
		if !price.GreaterThan(decimal.Zero) {
			price = product.Price
		}
		subtotal := price.Mul(decimal.NewFromInt(it.Quantity))
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	order := &entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   newOrderNumber(now),
		UserID:        userID,
		SupplierID:    in.SupplierID,
		Items:         items,
		Total:         total,
		OrderDate:     now,
		ExpectedDate:  in.ExpectedDate,
		CurrentStatus: entity.OrderStatusPending,
		StatusHistory: []entity.OrderStatusChange{{
			Status: entity.OrderStatusPending,
			Date:   now,
			UserID: userID,
		}},
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	resp := dto.ToOrderResponse(order)
	return &resp, nil
}

// GetByID obtiene una orden del usuario.
func (uc *OrderUseCase) GetByID(ctx context.Context, userID, id string) (*dto.OrderResponse, error) {
	order, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToOrderResponse(order)
	return &resp, nil
}

// UpdateStatus avanza la orden en su máquina de estados y agrega la entrada al
// historial. Al llegar a entregado registra las entradas de inventario.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range allowedTransitions[order.CurrentStatus] {
		if next == in.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrConflict
	}

	// Al entregar, las recepciones van primero: la orden solo queda marcada
	// como entregada si todas las entradas de inventario se aplicaron. Se
	// validan los productos antes de registrar nada para no dejar entradas
	// sueltas si un ítem falla a mitad de camino.
	if in.Status == entity.OrderStatusDelivered {
		for _, item := range order.Items {
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("recepción de %s: %w", item.ProductID, domain.ErrNotFound)
			}
			if product.UserID != userID {
				return nil, fmt.Errorf("recepción de %s: %w", item.ProductID, domain.ErrForbidden)
			}
		}
		for _, item := range order.Items {
			_, err := uc.recorder.RecordMovement(ctx, appinv.MovementInput{
				UserID:            userID,
				ProductID:         item.ProductID,
				Type:              entity.MovementTypeEntry,
				Quantity:          item.Quantity,
				Notes:             fmt.Sprintf("Recepción de orden %s", order.OrderNumber),
				ReferenceDocument: order.OrderNumber,
			})
			if err != nil {
				return nil, fmt.Errorf("recepción de %s: %w", item.ProductID, err)
			}
		}
	}

	now := time.Now()
	order.CurrentStatus = in.Status
	order.StatusHistory = append(order.StatusHistory, entity.OrderStatusChange{
		Status:  in.Status,
		Date:    now,
		UserID:  userID,
		Comment: in.Comment,
	})
	order.UpdatedAt = now
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}

	resp := dto.ToOrderResponse(order)
	return &resp, nil
}

// List lista las órdenes del usuario con filtros opcionales.
func (uc *OrderUseCase) List(ctx context.Context, userID, status, supplierID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	filter := repository.OrderFilter{UserID: userID, Status: status, SupplierID: supplierID}
	orders, err := uc.repo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Orders: out,
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina una orden pendiente. Las demás ya tienen efectos (o historial
// relevante) y solo se cancelan.
func (uc *OrderUseCase) Delete(ctx context.Context, userID, id string) error {
	order, err := uc.owned(userID, id)
	if err != nil {
		return err
	}
	if order.CurrentStatus != entity.OrderStatusPending {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func (uc *OrderUseCase) owned(userID, id string) (*entity.Order, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}
