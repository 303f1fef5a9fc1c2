package order

import (
	"context"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	"github.com/boostlab/smm-order-service/internal/infrastructure/metrics"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)

	// QuoteOrder prices an order without persisting anything.
	QuoteOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.QuoteOutput, error)

	// DispatchOrder submits a paid PENDING order to the fulfillment
	// provider. The operator triggers this; payment completion alone
	// never does.
	DispatchOrder(ctx context.Context, orderID string) (*orderdto.OrderOutput, error)

	// DeclineOrder cancels a PENDING order with an operator-supplied
	// reason, e.g. a flagged settlement that turned out wrong.
	DeclineOrder(ctx context.Context, orderID, reason string) error

	// SyncOrderStatus refreshes one dispatched order from the provider.
	SyncOrderStatus(ctx context.Context, orderID string) (*orderdto.OrderOutput, error)

	// ReconcileOrders refreshes every dispatched order in provider-sized
	// batches. Runs on a schedule and is safe to run concurrently with
	// single-order syncs.
	ReconcileOrders(ctx context.Context) error

	// CancelExpiredOrders closes orders whose payment window lapsed.
	CancelExpiredOrders(ctx context.Context) error

	GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error)
	GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*orderdto.OrderOutput, error)
}

type DefaultOrderUsecase struct {
	OrderRepo    domain.OrderRepository
	PaymentRepo  domain.PaymentRepository
	CatalogRepo  domain.CatalogRepository
	Provider     domain.FulfillmentProvider
	Notifier     domain.Notifier
	Publisher    *publisher.DefaultKafkaPublisher
	Metrics      *metrics.OrderMetrics
	OrderTopic   string
	Pricing      config.Pricing
	Reconcile    config.Reconcile
	ProviderSlug string
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	paymentRepo domain.PaymentRepository,
	catalogRepo domain.CatalogRepository,
	provider domain.FulfillmentProvider,
	notifier domain.Notifier,
	kafkaPublisher *publisher.DefaultKafkaPublisher,
	orderMetrics *metrics.OrderMetrics,
	cfg *config.OrderConfig) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo:    orderRepo,
		PaymentRepo:  paymentRepo,
		CatalogRepo:  catalogRepo,
		Provider:     provider,
		Notifier:     notifier,
		Publisher:    kafkaPublisher,
		Metrics:      orderMetrics,
		OrderTopic:   cfg.Kafka.OrderTopic,
		Pricing:      cfg.Pricing,
		Reconcile:    cfg.Reconcile,
		ProviderSlug: cfg.SMMPanel.Slug,
	}
}
