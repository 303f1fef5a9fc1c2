package domain

import "context"

// PaymentSettlement describes the atomic outcome of a successful match:
// one new Transaction plus the payment's terminal status. Both writes
// happen in a single database transaction, guarded on the payment still
// being PENDING.
type PaymentSettlement struct {
	PaymentID   string
	NewStatus   PaymentStatus
	Transaction *Transaction
}

type PaymentRepository interface {
	GetPaymentByID(ctx context.Context, paymentID string) (*Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*Payment, error)
	GetPaymentByGatewayRef(ctx context.Context, gatewayRef string) (*Payment, error)

	// FindPendingPaymentsByMethod returns PENDING payments of one method
	// in creation order. This is the matcher's candidate pool.
	FindPendingPaymentsByMethod(ctx context.Context, method PaymentMethod) ([]*Payment, error)

	// UpdatePendingPayment rewrites the mutable initiation fields (method,
	// gateway reference, crypto amount, exchange rate) of a payment that
	// is still PENDING. Terminal payments are rejected.
	UpdatePendingPayment(ctx context.Context, payment *Payment) error

	// SettlePayment creates the Transaction and flips the Payment status
	// atomically. Returns ErrPaymentAlreadySettled when the payment left
	// PENDING in the meantime, without any write.
	SettlePayment(ctx context.Context, settlement *PaymentSettlement) (*Transaction, error)
}

type TransactionRepository interface {
	// GetByExternalRef resolves a gateway transaction reference to an
	// existing settlement, the idempotency check for duplicate deliveries.
	GetByExternalRef(ctx context.Context, externalRef string) (*Transaction, error)
	GetCompletedByPaymentID(ctx context.Context, paymentID string) (*Transaction, error)
}

type WebhookLogRepository interface {
	Record(ctx context.Context, log *WebhookLog) error
	// MarkOutcome attaches the processing result to a recorded event.
	// Called exactly once per event on success and failure paths alike.
	MarkOutcome(ctx context.Context, logID string, outcome *WebhookOutcome) error
}
