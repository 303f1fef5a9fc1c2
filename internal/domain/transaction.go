package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// MatchTier records which matching rule linked a gateway transfer to a
// payment. Amount-only tiers are weaker correlation keys than the
// dedicated-account reference and are flagged for manual review.
type MatchTier string

const (
	MatchTierExact       MatchTier = "EXACT_AMOUNT"
	MatchTierFeeAdjusted MatchTier = "FEE_ADJUSTED"
	MatchTierAccountRef  MatchTier = "ACCOUNT_REF"
)

func (t MatchTier) NeedsReview() bool {
	return t == MatchTierExact || t == MatchTierFeeAdjusted
}

// Transaction is the durable record of one matched monetary movement.
// ExternalRef is unique per real-world transfer, which is what makes
// duplicate webhook deliveries collapse onto a single settlement.
type Transaction struct {
	ID              string
	PaymentID       string
	ExternalRef     string
	LocalRef        string
	Amount          float64
	Currency        string
	Status          TransactionStatus
	AccountNumber   string
	BankName        string
	Narration       string
	MatchTier       MatchTier
	NeedsReview     bool
	PaidAt          time.Time
	RawPayload      string
	WebhookReceived bool
	CreatedAt       time.Time
}
