package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// IsTerminal reports whether the payment status can never change again.
// COMPLETED and FAILED payments must never be reopened.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

type PaymentMethod string

const (
	PaymentMethodNGN    PaymentMethod = "NGN"
	PaymentMethodCrypto PaymentMethod = "CRYPTO"
)

type Payment struct {
	ID           string
	OrderID      string
	Amount       float64
	Currency     string
	Method       PaymentMethod
	Status       PaymentStatus
	GatewayRef   string
	CryptoAmount float64
	ExchangeRate float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
