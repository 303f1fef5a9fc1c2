package payment

import (
	"context"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	"github.com/boostlab/smm-order-service/internal/infrastructure/metrics"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	// InitiatePayment provisions the collection channel for a pending
	// payment: a dedicated virtual account for bank transfers, a priced
	// quote for crypto.
	InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error)

	// HandleWebhook ingests one gateway delivery end to end: record,
	// parse, match, settle, notify. The returned error describes why
	// processing stopped; the delivery itself is always recorded.
	HandleWebhook(ctx context.Context, delivery *paymentdto.WebhookDelivery) (*paymentdto.WebhookResult, error)

	// VerifyPayment re-checks a payment against the gateway on demand
	// and settles it if the gateway reports the transfer as final.
	VerifyPayment(ctx context.Context, orderID string) (*paymentdto.VerifyResult, error)

	// GetPaymentStatus returns the payment and, once settled, the
	// transaction that settled it.
	GetPaymentStatus(ctx context.Context, orderID string) (*paymentdto.PaymentStatusOutput, error)
}

type DefaultPaymentUsecase struct {
	PaymentRepo    domain.PaymentRepository
	TxnRepo        domain.TransactionRepository
	WebhookLogRepo domain.WebhookLogRepository
	OrderRepo      domain.OrderRepository
	Gateway        domain.PaymentGateway
	Matcher        *Matcher
	Notifier       domain.Notifier
	Publisher      *publisher.DefaultKafkaPublisher
	Metrics        *metrics.OrderMetrics
	OrderTopic     string
	Pricing        config.Pricing
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	txnRepo domain.TransactionRepository,
	webhookLogRepo domain.WebhookLogRepository,
	orderRepo domain.OrderRepository,
	gateway domain.PaymentGateway,
	matcher *Matcher,
	notifier domain.Notifier,
	kafkaPublisher *publisher.DefaultKafkaPublisher,
	orderMetrics *metrics.OrderMetrics,
	orderTopic string,
	pricing config.Pricing) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		PaymentRepo:    paymentRepo,
		TxnRepo:        txnRepo,
		WebhookLogRepo: webhookLogRepo,
		OrderRepo:      orderRepo,
		Gateway:        gateway,
		Matcher:        matcher,
		Notifier:       notifier,
		Publisher:      kafkaPublisher,
		Metrics:        orderMetrics,
		OrderTopic:     orderTopic,
		Pricing:        pricing,
	}
}
