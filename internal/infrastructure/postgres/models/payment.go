package models

import (
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
)

type PaymentModel struct {
	ID           string               `gorm:"primaryKey;type:uuid"`
	OrderID      string               `gorm:"type:uuid;uniqueIndex:ux_payments_order_id"`
	Amount       float64              `gorm:"not null;index:idx_payments_amount"`
	Currency     string               `gorm:"not null"`
	Method       domain.PaymentMethod `gorm:"index:idx_payments_status_method,priority:2"`
	Status       domain.PaymentStatus `gorm:"index:idx_payments_status_method,priority:1"`
	GatewayRef   string               `gorm:"index:idx_payments_gateway_ref"`
	CryptoAmount float64
	ExchangeRate float64
	CreatedAt    time.Time `gorm:"index:idx_payments_created_at"`
	UpdatedAt    time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

type TransactionModel struct {
	ID              string                   `gorm:"primaryKey;type:uuid"`
	PaymentID       string                   `gorm:"type:uuid;not null;index"`
	ExternalRef     string                   `gorm:"not null;uniqueIndex:ux_transactions_external_ref"`
	LocalRef        string                   `gorm:"index"`
	Amount          float64                  `gorm:"not null"`
	Currency        string                   `gorm:"not null"`
	Status          domain.TransactionStatus `gorm:"not null;index"`
	AccountNumber   string
	BankName        string
	Narration       string
	MatchTier       domain.MatchTier
	NeedsReview     bool `gorm:"index"`
	PaidAt          time.Time
	RawPayload      string `gorm:"type:jsonb"`
	WebhookReceived bool
	CreatedAt       time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

type WebhookLogModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Provider        string `gorm:"not null;index"`
	Event           string
	Payload         string `gorm:"type:jsonb"`
	IPAddress       string
	UserAgent       string
	Processed       bool `gorm:"index"`
	ProcessingError string
	PaymentID       string `gorm:"type:uuid"`
	OrderID         string `gorm:"type:uuid"`
	TransactionID   string `gorm:"type:uuid"`
	ReceivedAt      time.Time `gorm:"index"`
}

func (WebhookLogModel) TableName() string {
	return "webhook_logs"
}
