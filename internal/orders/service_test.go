package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-studio/velora/internal/catalog"
)

type mockOrderRepo struct {
	orders  map[int64]*Order
	nextID  int64
	failing bool
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]*Order), nextID: 1}
}

func (m *mockOrderRepo) Create(ctx context.Context, o *Order) (int64, error) {
	if m.failing {
		return 0, errors.New("connection refused")
	}
	stored := *o
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	m.orders[stored.ID] = &stored
	m.nextID++
	return stored.ID, nil
}

func (m *mockOrderRepo) Get(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepo) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

type stubLoader struct {
	cat catalog.Catalog
	err error
}

func (s stubLoader) Load(ctx context.Context) (catalog.Catalog, error) {
	return s.cat, s.err
}

func newTestService(t *testing.T, repo Repository) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	drafts := NewDraftStore(client, time.Hour)
	return NewService(repo, drafts, stubLoader{cat: testCatalog()}), mr
}

func buildMixedDraft(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()

	view, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	id := view.ID

	_, err = svc.AddServiceLine(ctx, id)
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, 0, "Hydra Facial")
	require.NoError(t, err)
	_, err = svc.SetServiceDiscount(ctx, id, 0, 10)
	require.NoError(t, err)

	_, err = svc.AddProductLine(ctx, id)
	require.NoError(t, err)
	_, err = svc.SelectProduct(ctx, id, 0, "Vitamin C Serum")
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, id, 0, 3)
	require.NoError(t, err)
	return id
}

func TestSubmitPersistsHeaderAndChildren(t *testing.T) {
	repo := newMockOrderRepo()
	svc, mr := newTestService(t, repo)
	ctx := context.Background()

	id := buildMixedDraft(t, svc)
	// Hydra Facial 180 @ 10% off = 162.00; Serum 95 × 3 = 285.00.
	view, err := svc.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "447.00", view.Total)

	order, err := svc.Submit(ctx, id, SubmitDraftRequest{PaymentMethod: PaymentCash})
	require.NoError(t, err)

	assert.Equal(t, "447.00", order.Total)
	assert.Equal(t, StatusPending, order.Status)
	require.Len(t, order.Services, 1)
	assert.Equal(t, "162.00", order.Services[0].LineTotal)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "285.00", order.Products[0].LineTotal)
	assert.Equal(t, 3, order.Products[0].Quantity)

	// The draft is cleared only after a successful write.
	assert.False(t, mr.Exists("draft:"+id))
	_, err = svc.GetDraft(ctx, id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSubmitEmptyDraft(t *testing.T) {
	repo := newMockOrderRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	view, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, view.ID, SubmitDraftRequest{PaymentMethod: PaymentTNG})
	require.NoError(t, err)

	assert.Equal(t, "0.00", order.Total)
	assert.Empty(t, order.Services)
	assert.Empty(t, order.Products)
}

func TestSubmitSkipsUnselectedLines(t *testing.T) {
	repo := newMockOrderRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	view, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	id := view.ID

	_, err = svc.AddServiceLine(ctx, id)
	require.NoError(t, err)
	_, err = svc.AddProductLine(ctx, id)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, id, SubmitDraftRequest{PaymentMethod: PaymentCash})
	require.NoError(t, err)
	assert.Empty(t, order.Services)
	assert.Empty(t, order.Products)
	assert.Equal(t, "0.00", order.Total)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	repo := newMockOrderRepo()
	repo.failing = true
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	id := buildMixedDraft(t, svc)

	_, err := svc.Submit(ctx, id, SubmitDraftRequest{PaymentMethod: PaymentCash})
	require.Error(t, err)

	// The editor state is exactly as it was before the attempt.
	view, err := svc.GetDraft(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Services, 1)
	require.Len(t, view.Products, 1)
	assert.Equal(t, 10.0, view.Services[0].Discount)
	assert.Equal(t, 3, view.Products[0].Quantity)
	assert.Equal(t, "447.00", view.Total)

	// A retry after the outage succeeds with the same state.
	repo.failing = false
	order, err := svc.Submit(ctx, id, SubmitDraftRequest{PaymentMethod: PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, "447.00", order.Total)
}

func TestSubmitClampsOutOfRangeInput(t *testing.T) {
	repo := newMockOrderRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	view, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	id := view.ID

	_, err = svc.AddServiceLine(ctx, id)
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, 0, "Chemical Peel")
	require.NoError(t, err)
	_, err = svc.SetServiceDiscount(ctx, id, 0, 150)
	require.NoError(t, err)

	_, err = svc.AddProductLine(ctx, id)
	require.NoError(t, err)
	_, err = svc.SelectProduct(ctx, id, 0, "Vitamin C Serum")
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, id, 0, 0)
	require.NoError(t, err)
	_, err = svc.SetProductDiscount(ctx, id, 0, -20)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, id, SubmitDraftRequest{PaymentMethod: PaymentCredit})
	require.NoError(t, err)

	// 150% clamps to 100%, quantity 0 to 1, -20% to 0%.
	require.Len(t, order.Services, 1)
	assert.Equal(t, "0.00", order.Services[0].LineTotal)
	assert.Equal(t, 100.0, order.Services[0].Discount)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "95.00", order.Products[0].LineTotal)
	assert.Equal(t, 1, order.Products[0].Quantity)
	assert.Equal(t, "95.00", order.Total)
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	repo := newMockOrderRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	view, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, view.ID, SubmitDraftRequest{PaymentMethod: "Barter"})
	require.Error(t, err)
	assert.Len(t, repo.orders, 0)
}
