package domain

import (
	"context"
	"time"
)

// VirtualAccount is a gateway-issued bank account dedicated to receiving
// one payment's funds.
type VirtualAccount struct {
	AccountNumber string
	AccountName   string
	BankName      string
	BankCode      string
	Reference     string
	ExpiresAt     time.Time
}

// GatewayTransaction is one transfer as reported by the gateway, either
// via verification API or the account transaction listing.
type GatewayTransaction struct {
	Reference string
	Amount    float64
	Currency  string
	Status    string
	PaidAt    time.Time
}

type PaymentGateway interface {
	CreateVirtualAccount(ctx context.Context, amount float64, currency, reference string) (*VirtualAccount, error)
	VerifyPayment(ctx context.Context, reference string) (*GatewayTransaction, error)
	ListAccountTransactions(ctx context.Context, accountRef string) ([]*GatewayTransaction, error)
}
