package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	"github.com/boostlab/smm-order-service/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One registry-backed metrics instance for the whole test package;
// promauto panics on duplicate registration.
var testMetrics = metrics.NewOrderMetrics()

// memOrderRepo keeps orders in memory and enforces the same transition
// guard as the database repository: apply runs on a copy and nothing is
// written when the transition is illegal or apply fails.
type memOrderRepo struct {
	mux    sync.Mutex
	orders map[string]*domain.Order
}

func newMemOrderRepo(orders ...*domain.Order) *memOrderRepo {
	repo := &memOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *memOrderRepo) CreateOrderWithPayment(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	order.Payment = payment
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memOrderRepo) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.Status == status {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindDispatchedOrders(ctx context.Context) ([]*domain.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.Status == domain.OrderStatusProcessing && o.ProviderOrderID != "" {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]*domain.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		paymentPending := o.Payment != nil && o.Payment.Status == domain.PaymentStatusPending
		if o.Status == domain.OrderStatusPending && paymentPending && o.CreatedAt.Before(olderThan) {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ProcessOrderTransition(ctx context.Context, orderID string, newStatus domain.OrderStatus, apply func(order *domain.Order) error) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	stored, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if !stored.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: order %s cannot go %s -> %s",
			domain.ErrIllegalTransition, orderID, stored.Status, newStatus)
	}

	copied := *stored
	if err := apply(&copied); err != nil {
		return err
	}
	copied.Status = newStatus
	copied.UpdatedAt = time.Now()
	r.orders[orderID] = &copied
	return nil
}

func (r *memOrderRepo) UpdateOrderProgress(ctx context.Context, orderID string, startCount, remains int) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.StartCount = startCount
	o.Remains = remains
	return nil
}

type fakeCatalogRepo struct {
	services map[string]*domain.Service
}

func (r *fakeCatalogRepo) UpsertProvider(ctx context.Context, provider *domain.ServiceProvider) error {
	return nil
}

func (r *fakeCatalogRepo) GetProviderBySlug(ctx context.Context, slug string) (*domain.ServiceProvider, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	s, ok := r.services[serviceID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s, nil
}

func (r *fakeCatalogRepo) GetServiceByProviderSvcID(ctx context.Context, providerID, providerSvcID string) (*domain.Service, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) SaveService(ctx context.Context, service *domain.Service) error {
	return nil
}

func (r *fakeCatalogRepo) FindServiceForOrder(ctx context.Context, platform, serviceType string, quantity int) (*domain.Service, error) {
	for _, s := range r.services {
		if s.Type == serviceType && quantity >= s.MinOrder && quantity <= s.MaxOrder {
			return s, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (r *fakeCatalogRepo) GetOrCreatePlatform(ctx context.Context, name string) (*domain.Platform, error) {
	return &domain.Platform{ID: "plat-" + name, Name: name}, nil
}

type fakeProvider struct {
	mux        sync.Mutex
	submitted  []string
	submitErr  error
	nextID     string
	statuses   map[string]*domain.ProviderOrderStatus
	batchCalls [][]string
}

func (p *fakeProvider) SubmitOrder(ctx context.Context, providerSvcID, link string, quantity int) (*domain.ProviderOrder, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.submitErr != nil {
		return nil, p.submitErr
	}
	p.submitted = append(p.submitted, providerSvcID)
	return &domain.ProviderOrder{ExternalOrderID: p.nextID, StartCount: 120}, nil
}

func (p *fakeProvider) GetOrderStatus(ctx context.Context, externalOrderID string) (*domain.ProviderOrderStatus, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	status, ok := p.statuses[externalOrderID]
	if !ok {
		return nil, errors.New("unknown order")
	}
	return status, nil
}

func (p *fakeProvider) GetOrdersStatus(ctx context.Context, externalOrderIDs []string) (map[string]*domain.ProviderOrderStatus, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.batchCalls = append(p.batchCalls, externalOrderIDs)
	out := make(map[string]*domain.ProviderOrderStatus)
	for _, id := range externalOrderIDs {
		if status, ok := p.statuses[id]; ok {
			out[id] = status
		}
	}
	return out, nil
}

func (p *fakeProvider) FetchServices(ctx context.Context) ([]*domain.ProviderService, error) {
	return nil, nil
}

func (p *fakeProvider) GetBalance(ctx context.Context) (float64, error) {
	return 0, nil
}

type fakeNotifier struct {
	mux   sync.Mutex
	calls []domain.NotificationKind
}

func (n *fakeNotifier) Notify(userID string, kind domain.NotificationKind, context map[string]string) {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.calls = append(n.calls, kind)
}

func (n *fakeNotifier) kinds() []domain.NotificationKind {
	n.mux.Lock()
	defer n.mux.Unlock()
	return append([]domain.NotificationKind(nil), n.calls...)
}

func newTestUsecase(repo *memOrderRepo, catalog *fakeCatalogRepo, provider *fakeProvider, notifier *fakeNotifier) *DefaultOrderUsecase {
	cfg := &config.OrderConfig{
		SMMPanel:  config.SMMPanel{Slug: "smmstone"},
		Kafka:     config.Kafka{OrderTopic: "order-events"},
		Pricing:   config.Pricing{MarkupPercentage: 30, UsdtNgnRate: 1612},
		Reconcile: config.Reconcile{BatchSize: 2, BatchDelay: time.Millisecond, OrderTTL: 72 * time.Hour},
	}
	return NewDefaultOrderUsecase(
		repo,
		nil,
		catalog,
		provider,
		notifier,
		publisher.NewDefaultKafkaPublisher([]string{"localhost:9092"}),
		testMetrics,
		cfg,
	)
}

func paidPendingOrder(id string) *domain.Order {
	return &domain.Order{
		ID:        id,
		UserID:    "u1",
		ServiceID: "svc-1",
		Quantity:  1000,
		Remains:   1000,
		Link:      "https://instagram.com/p/abc",
		Price:     2515.50,
		Currency:  "NGN",
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now(),
		Payment: &domain.Payment{
			ID:      "pay-" + id,
			OrderID: id,
			Status:  domain.PaymentStatusCompleted,
		},
	}
}

func TestDispatchOrderSubmitsToProvider(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	catalog := &fakeCatalogRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", ProviderSvcID: "4001", MinOrder: 100, MaxOrder: 10000},
	}}
	provider := &fakeProvider{nextID: "ext-551"}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, catalog, provider, notifier)

	out, err := uc.DispatchOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, out.Order.Status)
	assert.Equal(t, "ext-551", out.Order.ProviderOrderID)
	assert.Equal(t, 120, out.Order.StartCount)
	require.NotNil(t, out.Order.DispatchedAt)

	stored, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusProcessing, stored.Status)
	assert.Equal(t, "ext-551", stored.ProviderOrderID)

	assert.Equal(t, []string{"4001"}, provider.submitted)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyOrderProcessing}, notifier.kinds())
}

func TestDispatchOrderRequiresCompletedPayment(t *testing.T) {
	unpaid := paidPendingOrder("o1")
	unpaid.Payment.Status = domain.PaymentStatusPending
	repo := newMemOrderRepo(unpaid)
	provider := &fakeProvider{nextID: "ext-551"}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, &fakeNotifier{})

	_, err := uc.DispatchOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrPaymentNotCompleted)

	stored, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.Empty(t, provider.submitted)
}

func TestDispatchOrderProviderRejectionLeavesOrderPending(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	catalog := &fakeCatalogRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", ProviderSvcID: "4001"},
	}}
	provider := &fakeProvider{submitErr: fmt.Errorf("%w: not enough funds", domain.ErrProviderRejected)}
	uc := newTestUsecase(repo, catalog, provider, &fakeNotifier{})

	_, err := uc.DispatchOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrProviderRejected)

	stored, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.Empty(t, stored.ProviderOrderID)
}

func TestDispatchOrderTwiceIsIllegal(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	catalog := &fakeCatalogRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", ProviderSvcID: "4001"},
	}}
	provider := &fakeProvider{nextID: "ext-551"}
	uc := newTestUsecase(repo, catalog, provider, &fakeNotifier{})

	_, err := uc.DispatchOrder(context.Background(), "o1")
	require.NoError(t, err)

	_, err = uc.DispatchOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Len(t, provider.submitted, 1)
}

func TestDeclineOrder(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, &fakeProvider{}, notifier)

	err := uc.DeclineOrder(context.Background(), "o1", "flagged settlement rejected")
	require.NoError(t, err)

	stored, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	assert.Equal(t, "flagged settlement rejected", stored.DeclineReason)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyOrderCancelled}, notifier.kinds())
}

func TestDeclineDispatchedOrder(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	catalog := &fakeCatalogRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", ProviderSvcID: "4001"},
	}}
	uc := newTestUsecase(repo, catalog, &fakeProvider{nextID: "ext-551"}, &fakeNotifier{})

	_, err := uc.DispatchOrder(context.Background(), "o1")
	require.NoError(t, err)

	// A dispatched order can still be pulled by an operator.
	err = uc.DeclineOrder(context.Background(), "o1", "provider double billed")
	require.NoError(t, err)

	stored, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
}

func TestCancelExpiredOrders(t *testing.T) {
	stale := paidPendingOrder("stale")
	stale.Payment.Status = domain.PaymentStatusPending
	stale.CreatedAt = time.Now().Add(-100 * time.Hour)

	fresh := paidPendingOrder("fresh")
	fresh.Payment.Status = domain.PaymentStatusPending

	repo := newMemOrderRepo(stale, fresh)
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, &fakeProvider{}, &fakeNotifier{})

	err := uc.CancelExpiredOrders(context.Background())
	require.NoError(t, err)

	gone, _ := repo.GetOrderByID(context.Background(), "stale")
	assert.Equal(t, domain.OrderStatusCancelled, gone.Status)

	kept, _ := repo.GetOrderByID(context.Background(), "fresh")
	assert.Equal(t, domain.OrderStatusPending, kept.Status)
}
