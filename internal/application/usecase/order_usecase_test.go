package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-api/internal/application/dto"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/application/usecase"
	"github.com/stockline/stockline-api/internal/domain"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type orderStore struct {
	products  map[string]*entity.Product
	snapshots map[string]*entity.StockSnapshot
	movements []*entity.Movement
	orders    map[string]*entity.Order
	updates   int // llamadas a OrderRepository.Update
}

type stubProductRepo struct{ s *orderStore }

func (r *stubProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stubProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stubProductRepo) Update(p *entity.Product) error { return nil }
func (r *stubProductRepo) ApplyStockChange(productID string, change int64, at time.Time) error {
	r.s.products[productID].Stock += change
	return nil
}
func (r *stubProductRepo) SetStock(productID string, stock int64, at time.Time) error {
	r.s.products[productID].Stock = stock
	return nil
}
func (r *stubProductRepo) ListByUser(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) CountByUser(string) (int, error)                        { return 0, nil }
func (r *stubProductRepo) Delete(id string) error                                 { delete(r.s.products, id); return nil }

type stubSnapRepo struct{ s *orderStore }

func (r *stubSnapRepo) Get(productID string) (*entity.StockSnapshot, error) {
	return r.s.snapshots[productID], nil
}
func (r *stubSnapRepo) ApplyChange(productID string, change int64, at time.Time) error {
	snap := r.s.snapshots[productID]
	if snap == nil {
		snap = &entity.StockSnapshot{ProductID: productID}
		r.s.snapshots[productID] = snap
	}
	snap.CurrentStock += change
	snap.LastUpdate = at
	return nil
}
func (r *stubSnapRepo) Set(productID string, currentStock int64, at time.Time) error {
	r.s.snapshots[productID] = &entity.StockSnapshot{ProductID: productID, CurrentStock: currentStock, LastUpdate: at}
	return nil
}
func (r *stubSnapRepo) ListDrifted(int) ([]string, error) { return nil, nil }

type stubMovRepo struct{ s *orderStore }

func (r *stubMovRepo) Create(m *entity.Movement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *stubMovRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *stubMovRepo) ListByProductAsc(productID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMovRepo) ListByProduct(string, int, int) ([]*entity.Movement, error) { return nil, nil }
func (r *stubMovRepo) ListByUser(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *stubMovRepo) UpdateMeta(*entity.Movement) error { return nil }

type stubTxRunner struct{ s *orderStore }

func (t *stubTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	snapRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&stubMovRepo{s: t.s}, &stubSnapRepo{s: t.s}, &stubProductRepo{s: t.s})
}

type stubOrderRepo struct{ s *orderStore }

func (r *stubOrderRepo) Create(o *entity.Order) error { r.s.orders[o.ID] = o; return nil }
func (r *stubOrderRepo) GetByID(id string) (*entity.Order, error) {
	o := r.s.orders[id]
	if o == nil {
		return nil, nil
	}
	// Copia para que los cambios no persistidos no se reflejen en el store.
	cp := *o
	cp.StatusHistory = append([]entity.OrderStatusChange(nil), o.StatusHistory...)
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}
func (r *stubOrderRepo) Update(o *entity.Order) error {
	r.s.orders[o.ID] = o
	r.s.updates++
	return nil
}
func (r *stubOrderRepo) List(repository.OrderFilter, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *stubOrderRepo) Count(repository.OrderFilter) (int, error) { return 0, nil }
func (r *stubOrderRepo) Delete(id string) error                    { delete(r.s.orders, id); return nil }

type stubSupplierRepo struct{}

func (r *stubSupplierRepo) Create(*entity.Supplier) error { return nil }
func (r *stubSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return &entity.Supplier{ID: id, Name: "Proveedor"}, nil
}
func (r *stubSupplierRepo) Update(*entity.Supplier) error              { return nil }
func (r *stubSupplierRepo) List(int, int) ([]*entity.Supplier, error)  { return nil, nil }
func (r *stubSupplierRepo) Delete(string) error                        { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const ordUser = "00000000-0000-0000-0000-00000000000a"

func newOrderFixture(t *testing.T) (*usecase.OrderUseCase, *orderStore) {
	t.Helper()
	s := &orderStore{
		products:  make(map[string]*entity.Product),
		snapshots: make(map[string]*entity.StockSnapshot),
		orders:    make(map[string]*entity.Order),
	}
	now := time.Now()
	for _, id := range []string{"11111111-1111-4111-8111-111111111111", "22222222-2222-4222-8222-222222222222"} {
		s.products[id] = &entity.Product{
			ID: id, UserID: ordUser, Name: "Producto " + id[:2], Stock: 10,
			Price: decimal.NewFromInt(5), LastStockUpdate: now,
		}
		s.snapshots[id] = &entity.StockSnapshot{ProductID: id, CurrentStock: 10, LastUpdate: now}
	}

	recorder := appinv.NewRecordMovementUseCase(&stubTxRunner{s: s}, &stubProductRepo{s: s}, &stubMovRepo{s: s})
	uc := usecase.NewOrderUseCase(&stubOrderRepo{s: s}, &stubSupplierRepo{}, &stubProductRepo{s: s}, recorder)
	return uc, s
}

func seedOrder(s *orderStore, status string) *entity.Order {
	now := time.Now()
	order := &entity.Order{
		ID:          "33333333-3333-4333-8333-333333333333",
		OrderNumber: "ORD-1-0001",
		UserID:      ordUser,
		SupplierID:  "44444444-4444-4444-8444-444444444444",
		Items: []entity.OrderItem{
			{ProductID: "11111111-1111-4111-8111-111111111111", Quantity: 4, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(20)},
			{ProductID: "22222222-2222-4222-8222-222222222222", Quantity: 6, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(30)},
		},
		Total:         decimal.NewFromInt(50),
		OrderDate:     now,
		CurrentStatus: status,
		StatusHistory: []entity.OrderStatusChange{{Status: entity.OrderStatusPending, Date: now, UserID: ordUser}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.orders[order.ID] = order
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_EntregaRegistraEntradasPorItem(t *testing.T) {
	uc, s := newOrderFixture(t)
	order := seedOrder(s, entity.OrderStatusShipped)

	resp, err := uc.UpdateStatus(context.Background(), ordUser, order.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered, Comment: "recibido completo"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, resp.CurrentStatus)

	require.Len(t, s.movements, 2, "una entrada por ítem")
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementTypeEntry, m.Type)
		assert.Equal(t, order.OrderNumber, m.ReferenceDocument)
	}
	assert.Equal(t, int64(14), s.products["11111111-1111-4111-8111-111111111111"].Stock)
	assert.Equal(t, int64(16), s.products["22222222-2222-4222-8222-222222222222"].Stock)
	assert.Equal(t, entity.OrderStatusDelivered, s.orders[order.ID].CurrentStatus)
}

// Si un ítem no puede recibirse la orden NO queda entregada y no se aplica
// ninguna entrada: sin estados a medias.
func TestUpdateStatus_ItemFallidoNoDejaLaOrdenEntregada(t *testing.T) {
	uc, s := newOrderFixture(t)
	order := seedOrder(s, entity.OrderStatusShipped)

	// El segundo producto de la orden ya no existe.
	delete(s.products, "22222222-2222-4222-8222-222222222222")

	_, err := uc.UpdateStatus(context.Background(), ordUser, order.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, entity.OrderStatusShipped, s.orders[order.ID].CurrentStatus,
		"la orden debe seguir en enviado")
	assert.Zero(t, s.updates, "el estado no debe persistirse")
	assert.Empty(t, s.movements, "ninguna entrada debe registrarse")
	assert.Equal(t, int64(10), s.products["11111111-1111-4111-8111-111111111111"].Stock,
		"el stock del primer ítem no debe tocarse")
}

func TestUpdateStatus_TransicionInvalida(t *testing.T) {
	uc, s := newOrderFixture(t)
	order := seedOrder(s, entity.OrderStatusPending)

	_, err := uc.UpdateStatus(context.Background(), ordUser, order.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, s.movements)
}

func TestUpdateStatus_EstadoTerminal(t *testing.T) {
	uc, s := newOrderFixture(t)
	order := seedOrder(s, entity.OrderStatusCancelled)

	_, err := uc.UpdateStatus(context.Background(), ordUser, order.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDelete_SoloOrdenesPendientes(t *testing.T) {
	uc, s := newOrderFixture(t)
	order := seedOrder(s, entity.OrderStatusConfirmed)

	err := uc.Delete(context.Background(), ordUser, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	s.orders[order.ID].CurrentStatus = entity.OrderStatusPending
	require.NoError(t, uc.Delete(context.Background(), ordUser, order.ID))
	assert.Nil(t, s.orders[order.ID])
}
