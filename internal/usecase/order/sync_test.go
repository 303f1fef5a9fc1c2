package order

import (
	"context"
	"testing"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processingOrder(id, providerOrderID string) *domain.Order {
	now := time.Now().Add(-10 * time.Minute)
	return &domain.Order{
		ID:              id,
		UserID:          "u1",
		ServiceID:       "svc-1",
		Quantity:        1000,
		Remains:         1000,
		Status:          domain.OrderStatusProcessing,
		ProviderOrderID: providerOrderID,
		DispatchedAt:    &now,
		CreatedAt:       now,
	}
}

func TestSyncOrderStatusCompleted(t *testing.T) {
	repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "Completed", StartCount: 120, Remains: 0},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

	out, err := uc.SyncOrderStatus(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, out.Order.Status)
	assert.Equal(t, 0, out.Order.Remains)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyOrderCompleted}, notifier.kinds())
}

func TestSyncOrderStatusProgressOnly(t *testing.T) {
	repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "In progress", StartCount: 120, Remains: 400},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

	out, err := uc.SyncOrderStatus(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, out.Order.Status)
	assert.Equal(t, 400, out.Order.Remains)
	assert.Equal(t, 120, out.Order.StartCount)
	assert.Empty(t, notifier.kinds())
}

func TestSyncOrderStatusPartialKeepsProcessing(t *testing.T) {
	repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "Partial", StartCount: 120, Remains: 250},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

	out, err := uc.SyncOrderStatus(context.Background(), "o1")
	require.NoError(t, err)

	// Partial never closes the order on its own.
	assert.Equal(t, domain.OrderStatusProcessing, out.Order.Status)
	assert.Equal(t, 250, out.Order.Remains)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyOrderPartial}, notifier.kinds())
}

func TestSyncOrderStatusCancelledAndFailed(t *testing.T) {
	cases := []struct {
		providerStatus string
		wantStatus     domain.OrderStatus
		wantKind       domain.NotificationKind
		wantReason     string
	}{
		{"canceled", domain.OrderStatusCancelled, domain.NotifyOrderCancelled, "provider reported canceled"},
		{"Cancelled", domain.OrderStatusCancelled, domain.NotifyOrderCancelled, "provider reported cancelled"},
		{"failed", domain.OrderStatusFailed, domain.NotifyOrderFailed, "provider reported failed"},
		{"Error", domain.OrderStatusFailed, domain.NotifyOrderFailed, "provider reported error"},
	}

	for _, tc := range cases {
		t.Run(tc.providerStatus, func(t *testing.T) {
			repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
			provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
				"ext-1": {ExternalOrderID: "ext-1", Status: tc.providerStatus, Remains: 1000},
			}}
			notifier := &fakeNotifier{}
			uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

			out, err := uc.SyncOrderStatus(context.Background(), "o1")
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, out.Order.Status)
			assert.Equal(t, tc.wantReason, out.Order.DeclineReason)
			assert.Equal(t, []domain.NotificationKind{tc.wantKind}, notifier.kinds())
		})
	}
}

func TestSyncOrderStatusUnknownStatusIsNoop(t *testing.T) {
	repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "refunding", Remains: 500},
	}}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, &fakeNotifier{})

	out, err := uc.SyncOrderStatus(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, out.Order.Status)
	assert.Equal(t, 1000, out.Order.Remains)
}

func TestSyncOrderStatusSkipsTerminalOrders(t *testing.T) {
	done := processingOrder("o1", "ext-1")
	done.Status = domain.OrderStatusCompleted
	repo := newMemOrderRepo(done)
	provider := &fakeProvider{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, &fakeNotifier{})

	out, err := uc.SyncOrderStatus(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, out.Order.Status)
	assert.Empty(t, provider.batchCalls)
}

func TestReconcileOrdersBatches(t *testing.T) {
	repo := newMemOrderRepo(
		processingOrder("o1", "ext-1"),
		processingOrder("o2", "ext-2"),
		processingOrder("o3", "ext-3"),
	)
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "completed", StartCount: 100, Remains: 0},
		"ext-2": {ExternalOrderID: "ext-2", Status: "processing", StartCount: 50, Remains: 600},
		"ext-3": {ExternalOrderID: "ext-3", Status: "canceled", Remains: 1000},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

	err := uc.ReconcileOrders(context.Background())
	require.NoError(t, err)

	// Batch size is 2, so three orders take two provider calls.
	require.Len(t, provider.batchCalls, 2)
	assert.Len(t, provider.batchCalls[0], 2)
	assert.Len(t, provider.batchCalls[1], 1)

	o1, _ := repo.GetOrderByID(context.Background(), "o1")
	assert.Equal(t, domain.OrderStatusCompleted, o1.Status)
	assert.Equal(t, 0, o1.Remains)

	o2, _ := repo.GetOrderByID(context.Background(), "o2")
	assert.Equal(t, domain.OrderStatusProcessing, o2.Status)
	assert.Equal(t, 600, o2.Remains)

	o3, _ := repo.GetOrderByID(context.Background(), "o3")
	assert.Equal(t, domain.OrderStatusCancelled, o3.Status)
}

func TestReconcileOrdersSecondRunIsQuiet(t *testing.T) {
	repo := newMemOrderRepo(processingOrder("o1", "ext-1"))
	provider := &fakeProvider{statuses: map[string]*domain.ProviderOrderStatus{
		"ext-1": {ExternalOrderID: "ext-1", Status: "completed", StartCount: 100, Remains: 0},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, notifier)

	require.NoError(t, uc.ReconcileOrders(context.Background()))
	require.NoError(t, uc.ReconcileOrders(context.Background()))

	// The completed order left the dispatched set, so the second cycle
	// asks the provider nothing and notifies nobody new.
	assert.Len(t, provider.batchCalls, 1)
	assert.Equal(t, []domain.NotificationKind{domain.NotifyOrderCompleted}, notifier.kinds())
}

func TestReconcileOrdersNothingDispatched(t *testing.T) {
	repo := newMemOrderRepo(paidPendingOrder("o1"))
	provider := &fakeProvider{}
	uc := newTestUsecase(repo, &fakeCatalogRepo{}, provider, &fakeNotifier{})

	require.NoError(t, uc.ReconcileOrders(context.Background()))
	assert.Empty(t, provider.batchCalls)
}
