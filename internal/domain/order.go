package domain

import (
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

// orderTransitions lists every legal status change. Anything not listed
// here is an illegal transition and must be rejected loudly.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

type Order struct {
	ID              string
	UserID          string
	PlatformID      string
	ServiceID       string
	Quantity        int
	Link            string
	Price           float64
	Currency        string
	Status          OrderStatus
	ProviderOrderID string
	StartCount      int
	Remains         int
	DeclineReason   string
	DispatchedAt    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Payment  *Payment
	Service  *Service
	Platform *Platform
}

// OrderProgress is the provider-reported delivery progress of a
// PROCESSING order.
type OrderProgress struct {
	Delivered          int
	Remains            int
	Percentage         int
	EstimatedRemaining time.Duration
	HasEstimate        bool
}

// Progress derives delivery progress from the last reconciled remains
// counter. The completion estimate is a linear extrapolation of elapsed
// processing time; it is undefined while the percentage is zero.
func (o *Order) Progress(now time.Time) OrderProgress {
	delivered := o.Quantity - o.Remains
	if delivered < 0 {
		delivered = 0
	}

	pct := 0
	if o.Quantity > 0 {
		pct = int(math.Round(float64(delivered) / float64(o.Quantity) * 100))
		if pct > 100 {
			pct = 100
		}
	}
	if o.Status == OrderStatusCompleted {
		pct = 100
		delivered = o.Quantity
	}

	progress := OrderProgress{
		Delivered:  delivered,
		Remains:    o.Remains,
		Percentage: pct,
	}

	if pct > 0 && pct < 100 && o.DispatchedAt != nil {
		elapsed := now.Sub(*o.DispatchedAt)
		total := time.Duration(float64(elapsed) / float64(pct) * 100)
		progress.EstimatedRemaining = total - elapsed
		progress.HasEstimate = true
	}

	return progress
}
