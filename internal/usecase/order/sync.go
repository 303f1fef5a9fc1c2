package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

// ReconcileOrders walks every dispatched order, asks the provider for
// its current state in batches and applies the result. One bad order or
// one failed batch never stops the cycle; errors are logged and the
// sweep moves on.
func (uc *DefaultOrderUsecase) ReconcileOrders(ctx context.Context) error {
	start := time.Now()

	orders, err := uc.OrderRepo.FindDispatchedOrders(ctx)
	if err != nil {
		uc.Metrics.RecordReconcileCycle("error", time.Since(start).Seconds())
		return fmt.Errorf("loading dispatched orders: %w", err)
	}
	if len(orders) == 0 {
		uc.Metrics.RecordReconcileCycle("empty", time.Since(start).Seconds())
		return nil
	}

	batchSize := uc.Reconcile.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	byProviderID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		byProviderID[o.ProviderOrderID] = o
	}

	failed := false
	for i := 0; i < len(orders); i += batchSize {
		end := i + batchSize
		if end > len(orders) {
			end = len(orders)
		}

		ids := make([]string, 0, end-i)
		for _, o := range orders[i:end] {
			ids = append(ids, o.ProviderOrderID)
		}

		statuses, err := uc.Provider.GetOrdersStatus(ctx, ids)
		if err != nil {
			uc.Metrics.RecordProviderError(uc.ProviderSlug, "orders_status")
			slog.Error("batch status fetch failed", "batch_start", i, "error", err.Error())
			failed = true
		} else {
			for id, status := range statuses {
				order, ok := byProviderID[id]
				if !ok {
					continue
				}
				if err := uc.applyProviderStatus(ctx, order, status); err != nil {
					slog.Error("failed to apply provider status",
						"order_id", order.ID, "provider_status", status.Status, "error", err.Error())
				}
			}
		}

		if end < len(orders) {
			select {
			case <-ctx.Done():
				uc.Metrics.RecordReconcileCycle("cancelled", time.Since(start).Seconds())
				return ctx.Err()
			case <-time.After(uc.Reconcile.BatchDelay):
			}
		}
	}

	outcome := "ok"
	if failed {
		outcome = "partial_failure"
	}
	uc.Metrics.RecordReconcileCycle(outcome, time.Since(start).Seconds())
	return nil
}

// SyncOrderStatus refreshes a single order on demand.
func (uc *DefaultOrderUsecase) SyncOrderStatus(ctx context.Context, orderID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusProcessing || order.ProviderOrderID == "" {
		return &orderdto.OrderOutput{Order: *order, Progress: order.Progress(time.Now())}, nil
	}

	status, err := uc.Provider.GetOrderStatus(ctx, order.ProviderOrderID)
	if err != nil {
		uc.Metrics.RecordProviderError(uc.ProviderSlug, "order_status")
		return nil, fmt.Errorf("fetching provider status for %s: %w", orderID, err)
	}

	if err := uc.applyProviderStatus(ctx, order, status); err != nil {
		return nil, err
	}

	refreshed, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &orderdto.OrderOutput{Order: *refreshed, Progress: refreshed.Progress(time.Now())}, nil
}

// applyProviderStatus maps one provider-reported status onto the order
// state machine. Re-applying the same report is a no-op: terminal
// transitions are guarded by the transition table and progress updates
// are idempotent writes of the same counters.
func (uc *DefaultOrderUsecase) applyProviderStatus(ctx context.Context, order *domain.Order, status *domain.ProviderOrderStatus) error {
	switch strings.ToLower(status.Status) {
	case "completed":
		return uc.completeOrder(ctx, order, status)

	case "processing", "in progress", "inprogress", "pending", "awaiting":
		return uc.OrderRepo.UpdateOrderProgress(ctx, order.ID, status.StartCount, status.Remains)

	case "partial":
		// The provider stopped short. Informational only: the order
		// keeps PROCESSING until an operator or later report decides.
		if err := uc.OrderRepo.UpdateOrderProgress(ctx, order.ID, status.StartCount, status.Remains); err != nil {
			return err
		}
		uc.Notifier.Notify(order.UserID, domain.NotifyOrderPartial, map[string]string{
			"order_id":  order.ID,
			"delivered": fmt.Sprintf("%d", order.Quantity-status.Remains),
			"remains":   fmt.Sprintf("%d", status.Remains),
		})
		return nil

	case "canceled", "cancelled":
		return uc.closeOrder(ctx, order, status, domain.OrderStatusCancelled, domain.NotifyOrderCancelled)

	case "failed", "error":
		return uc.closeOrder(ctx, order, status, domain.OrderStatusFailed, domain.NotifyOrderFailed)

	default:
		slog.Warn("unrecognized provider status",
			"order_id", order.ID, "provider_status", status.Status)
		return nil
	}
}

func (uc *DefaultOrderUsecase) completeOrder(ctx context.Context, order *domain.Order, status *domain.ProviderOrderStatus) error {
	err := uc.OrderRepo.ProcessOrderTransition(ctx, order.ID, domain.OrderStatusCompleted, func(o *domain.Order) error {
		o.StartCount = status.StartCount
		o.Remains = 0
		return nil
	})
	if err != nil {
		return err
	}

	uc.Metrics.RecordOrderCompleted(uc.ProviderSlug)
	uc.Notifier.Notify(order.UserID, domain.NotifyOrderCompleted, map[string]string{
		"order_id": order.ID,
	})
	uc.publishEvent(publisher.OrderEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Event:    "order_completed",
		Status:   string(domain.OrderStatusCompleted),
		Amount:   order.Price,
		Currency: order.Currency,
	})
	return nil
}

func (uc *DefaultOrderUsecase) closeOrder(
	ctx context.Context,
	order *domain.Order,
	status *domain.ProviderOrderStatus,
	newStatus domain.OrderStatus,
	kind domain.NotificationKind,
) error {
	err := uc.OrderRepo.ProcessOrderTransition(ctx, order.ID, newStatus, func(o *domain.Order) error {
		o.StartCount = status.StartCount
		o.Remains = status.Remains
		o.DeclineReason = "provider reported " + strings.ToLower(status.Status)
		return nil
	})
	if err != nil {
		return err
	}

	if newStatus == domain.OrderStatusFailed {
		uc.Metrics.RecordOrderFailed(uc.ProviderSlug)
	} else {
		uc.Metrics.RecordOrderCancelled("provider")
	}
	uc.Notifier.Notify(order.UserID, kind, map[string]string{
		"order_id": order.ID,
		"status":   strings.ToLower(status.Status),
	})
	uc.publishEvent(publisher.OrderEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Event:    "order_" + strings.ToLower(string(newStatus)),
		Status:   string(newStatus),
		Amount:   order.Price,
		Currency: order.Currency,
	})
	return nil
}
