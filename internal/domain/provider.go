package domain

import "context"

// ProviderOrder is the upstream panel's acknowledgement of a submitted
// order.
type ProviderOrder struct {
	ExternalOrderID string
	Charge          float64
	StartCount      int
}

// ProviderOrderStatus is the live status the panel reports for one
// dispatched order.
type ProviderOrderStatus struct {
	ExternalOrderID string
	Status          string
	StartCount      int
	Remains         int
	Charge          float64
}

// ProviderService is one catalog entry from the panel's service list.
type ProviderService struct {
	ServiceID string
	Name      string
	Type      string
	Category  string
	Rate      float64
	Min       int
	Max       int
}

type FulfillmentProvider interface {
	SubmitOrder(ctx context.Context, providerSvcID, link string, quantity int) (*ProviderOrder, error)
	GetOrderStatus(ctx context.Context, externalOrderID string) (*ProviderOrderStatus, error)
	// GetOrdersStatus is the batched variant; the result map is keyed by
	// external order id and omits ids the provider failed to report.
	GetOrdersStatus(ctx context.Context, externalOrderIDs []string) (map[string]*ProviderOrderStatus, error)
	FetchServices(ctx context.Context) ([]*ProviderService, error)
	GetBalance(ctx context.Context) (float64, error)
}
