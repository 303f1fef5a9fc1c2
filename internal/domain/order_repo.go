package domain

import (
	"context"
	"time"
)

type OrderRepository interface {
	// CreateOrderWithPayment persists a new order and its payment in one
	// database transaction; neither row exists without the other.
	CreateOrderWithPayment(ctx context.Context, order *Order, payment *Payment) error

	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrdersByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)

	// FindDispatchedOrders returns PROCESSING orders that carry a provider
	// order id, in creation order. These are the reconciliation candidates.
	FindDispatchedOrders(ctx context.Context) ([]*Order, error)

	FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]*Order, error)

	// ProcessOrderTransition executes one guarded status change as a single
	// atomic read-modify-write. The order row is locked, the transition is
	// validated against the legal transition table, apply runs inside the
	// same database transaction (and may mutate dispatch fields or perform
	// the provider call), then the new status and mutated fields are
	// written. An illegal transition returns ErrIllegalTransition and
	// writes nothing.
	ProcessOrderTransition(ctx context.Context, orderID string, newStatus OrderStatus, apply func(order *Order) error) error

	// UpdateOrderProgress stores the provider-reported counters without
	// touching status. Used for "processing"/"partial" reconcile results.
	UpdateOrderProgress(ctx context.Context, orderID string, startCount, remains int) error
}
