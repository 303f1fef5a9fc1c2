package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
)

// DeclineOrder cancels an order with an operator reason. PENDING and
// PROCESSING orders can be declined; terminal ones fail the transition
// guard.
func (uc *DefaultOrderUsecase) DeclineOrder(ctx context.Context, orderID, reason string) error {
	var declined domain.Order

	err := uc.OrderRepo.ProcessOrderTransition(ctx, orderID, domain.OrderStatusCancelled, func(order *domain.Order) error {
		order.DeclineReason = reason
		declined = *order
		return nil
	})
	if err != nil {
		return err
	}

	uc.Metrics.RecordOrderCancelled("declined")
	uc.Notifier.Notify(declined.UserID, domain.NotifyOrderCancelled, map[string]string{
		"order_id": declined.ID,
		"reason":   reason,
	})
	uc.publishEvent(publisher.OrderEvent{
		OrderID:  declined.ID,
		UserID:   declined.UserID,
		Event:    "order_declined",
		Status:   string(domain.OrderStatusCancelled),
		Amount:   declined.Price,
		Currency: declined.Currency,
	})
	return nil
}

// CancelExpiredOrders closes orders that sat unpaid past the configured
// TTL. Cancellation keeps the rows; nothing is deleted.
func (uc *DefaultOrderUsecase) CancelExpiredOrders(ctx context.Context) error {
	cutoff := time.Now().Add(-uc.Reconcile.OrderTTL)
	stale, err := uc.OrderRepo.FindStalePendingOrders(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, order := range stale {
		err := uc.OrderRepo.ProcessOrderTransition(ctx, order.ID, domain.OrderStatusCancelled, func(o *domain.Order) error {
			o.DeclineReason = "payment window expired"
			return nil
		})
		if err != nil {
			slog.Error("failed to cancel expired order", "order_id", order.ID, "error", err.Error())
			continue
		}

		uc.Metrics.RecordOrderCancelled("expired")
		uc.Notifier.Notify(order.UserID, domain.NotifyOrderCancelled, map[string]string{
			"order_id": order.ID,
			"reason":   "payment window expired",
		})
	}

	if len(stale) > 0 {
		slog.Info("expired order sweep finished", "cancelled", len(stale))
	}
	return nil
}
