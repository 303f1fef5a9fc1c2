package paymentdto

import (
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
)

type InitiatePaymentInput struct {
	OrderID string
	Method  domain.PaymentMethod
}

type InitiatePaymentOutput struct {
	Payment        domain.Payment
	VirtualAccount *domain.VirtualAccount
}

// WebhookDelivery is one raw inbound notification plus its transport
// metadata, exactly as the HTTP layer received it.
type WebhookDelivery struct {
	Provider   string
	Payload    []byte
	IPAddress  string
	UserAgent  string
	ReceivedAt time.Time
}

type WebhookResult struct {
	LogID         string
	PaymentID     string
	OrderID       string
	TransactionID string
	MatchTier     domain.MatchTier
	NeedsReview   bool
}

type PaymentStatusOutput struct {
	Payment     domain.Payment
	Transaction *domain.Transaction
}

type VerifyResult struct {
	Payment     domain.Payment
	Settled     bool
	GatewayInfo *domain.GatewayTransaction
}
