package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

// DispatchOrder moves a paid PENDING order to PROCESSING and submits it
// upstream. The provider call runs inside the locked transition, so two
// concurrent dispatches of the same order cannot both reach the
// provider: the second one fails the transition guard before
// submitting. A provider rejection aborts the transaction and the order
// stays PENDING untouched.
func (uc *DefaultOrderUsecase) DispatchOrder(ctx context.Context, orderID string) (*orderdto.OrderOutput, error) {
	var dispatched domain.Order

	err := uc.OrderRepo.ProcessOrderTransition(ctx, orderID, domain.OrderStatusProcessing, func(order *domain.Order) error {
		if order.Payment == nil || order.Payment.Status != domain.PaymentStatusCompleted {
			return domain.ErrPaymentNotCompleted
		}

		service, err := uc.CatalogRepo.GetServiceByID(ctx, order.ServiceID)
		if err != nil {
			return err
		}

		submitted, err := uc.Provider.SubmitOrder(ctx, service.ProviderSvcID, order.Link, order.Quantity)
		if err != nil {
			uc.Metrics.RecordProviderError(uc.ProviderSlug, "submit_order")
			return fmt.Errorf("submitting order %s: %w", orderID, err)
		}

		now := time.Now()
		order.ProviderOrderID = submitted.ExternalOrderID
		order.StartCount = submitted.StartCount
		order.DispatchedAt = &now

		dispatched = *order
		return nil
	})
	if err != nil {
		return nil, err
	}
	dispatched.Status = domain.OrderStatusProcessing

	uc.Metrics.RecordOrderDispatched(uc.ProviderSlug)
	uc.Notifier.Notify(dispatched.UserID, domain.NotifyOrderProcessing, map[string]string{
		"order_id":          dispatched.ID,
		"provider_order_id": dispatched.ProviderOrderID,
	})
	uc.publishEvent(publisher.OrderEvent{
		OrderID:  dispatched.ID,
		UserID:   dispatched.UserID,
		Event:    "order_dispatched",
		Status:   string(domain.OrderStatusProcessing),
		Amount:   dispatched.Price,
		Currency: dispatched.Currency,
	})

	slog.Info("order dispatched",
		"order_id", dispatched.ID, "provider_order_id", dispatched.ProviderOrderID)

	return &orderdto.OrderOutput{
		Order:    dispatched,
		Progress: dispatched.Progress(time.Now()),
	}, nil
}
