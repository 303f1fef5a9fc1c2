package order

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
	"github.com/google/uuid"
)

// CreateOrder prices an order against the service catalog and persists
// it together with its PENDING payment in one transaction. The order
// waits in PENDING until the payment settles and an operator dispatches
// it.
func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	service, err := uc.resolveService(ctx, input)
	if err != nil {
		return nil, err
	}
	if input.Quantity < service.MinOrder || input.Quantity > service.MaxOrder {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			domain.ErrQuantityOutOfRange, input.Quantity, service.MinOrder, service.MaxOrder)
	}

	price, currency := uc.priceOrder(service, input.Quantity, input.Method)

	now := time.Now()
	order := &domain.Order{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		PlatformID: service.PlatformID,
		ServiceID:  service.ID,
		Quantity:   input.Quantity,
		Link:       input.Link,
		Price:      price,
		Currency:   currency,
		Status:     domain.OrderStatusPending,
		Remains:    input.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	payment := &domain.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Amount:    price,
		Currency:  currency,
		Method:    input.Method,
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.OrderRepo.CreateOrderWithPayment(ctx, order, payment); err != nil {
		return nil, fmt.Errorf("persisting order: %w", err)
	}
	order.Payment = payment

	uc.Metrics.RecordOrderCreated(input.Platform, string(input.Method))
	uc.publishEvent(publisher.OrderEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Event:    "order_created",
		Status:   string(order.Status),
		Amount:   order.Price,
		Currency: order.Currency,
	})

	return &orderdto.OrderOutput{Order: *order}, nil
}

func (uc *DefaultOrderUsecase) resolveService(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Service, error) {
	if input.ServiceID != "" {
		return uc.CatalogRepo.GetServiceByID(ctx, input.ServiceID)
	}

	platform, err := uc.CatalogRepo.GetOrCreatePlatform(ctx, input.Platform)
	if err != nil {
		return nil, err
	}
	return uc.CatalogRepo.FindServiceForOrder(ctx, platform.ID, input.ServiceType, input.Quantity)
}

// priceOrder converts the per-thousand USD boost rate into the payable
// amount. NGN payments convert at the configured USDT rate and round to
// whole naira; crypto payments charge the USD amount directly.
func (uc *DefaultOrderUsecase) priceOrder(service *domain.Service, quantity int, method domain.PaymentMethod) (float64, string) {
	usd := service.BoostRate / 1000 * float64(quantity)

	if method == domain.PaymentMethodCrypto {
		return math.Round(usd*100) / 100, "USDT"
	}
	return math.Round(usd * uc.Pricing.UsdtNgnRate), "NGN"
}

func (uc *DefaultOrderUsecase) publishEvent(event publisher.OrderEvent) {
	go func() {
		if err := uc.Publisher.PublishOrderEvent(uc.OrderTopic, event); err != nil {
			slog.Error("failed to publish OrderEvent:"+event.Event, "order_id", event.OrderID, "error", err.Error())
		}
	}()
}
