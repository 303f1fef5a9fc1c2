package payment

import (
	"testing"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	return NewMatcher(config.Matcher{AmountTolerance: 1, TransferFee: 50})
}

func pendingPayment(id string, amount float64, gatewayRef string) *domain.Payment {
	return &domain.Payment{
		ID:         id,
		OrderID:    "order-" + id,
		Amount:     amount,
		Currency:   "NGN",
		Method:     domain.PaymentMethodNGN,
		Status:     domain.PaymentStatusPending,
		GatewayRef: gatewayRef,
	}
}

func TestParseBudpayEvent(t *testing.T) {
	payload := []byte(`{
		"notify": "transaction",
		"notifyType": "successful",
		"data": {
			"reference": "ord-abc123",
			"sessionid": "100033221144",
			"amount": "2,515.50",
			"currency": "NGN",
			"status": "success",
			"craccount": "8000112233",
			"bankname": "Wema Bank",
			"narration": "TRF from customer"
		}
	}`)

	event, err := ParseWebhookEvent("budpay", payload)
	require.NoError(t, err)
	assert.Equal(t, "100033221144", event.ExternalRef)
	assert.Equal(t, "ord-abc123", event.GatewayRef)
	assert.Equal(t, 2515.50, event.Amount)
	assert.Equal(t, "NGN", event.Currency)
	assert.True(t, event.Succeeded())
}

func TestParseBudpayEventAmountShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
	}{
		{"display string with separator", `{"notify":"transaction","data":{"reference":"r1","amount":"2,515.50","status":"success"}}`, 2515.50},
		{"plain string", `{"notify":"transaction","data":{"reference":"r1","amount":"100.25","status":"success"}}`, 100.25},
		{"bare number", `{"notify":"transaction","data":{"reference":"r1","amount":2515.5,"status":"success"}}`, 2515.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseWebhookEvent("budpay", []byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.Amount)
		})
	}
}

func TestParseWebhookEventRejectsGarbage(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		payload  string
	}{
		{"not json", "budpay", `<xml>nope</xml>`},
		{"missing amount", "budpay", `{"notify":"transaction","data":{"reference":"r1","status":"success"}}`},
		{"zero amount", "budpay", `{"notify":"transaction","data":{"reference":"r1","amount":"0","status":"success"}}`},
		{"missing reference", "budpay", `{"notify":"transaction","data":{"amount":"100","status":"success"}}`},
		{"unknown provider", "stripe", `{"amount":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWebhookEvent(tt.provider, []byte(tt.payload))
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestMatchExactAmount(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 2515.50, "ord-aaa"),
		pendingPayment("p2", 9000, "ord-bbb"),
	}

	result, err := m.Match(&ParsedEvent{Amount: 2515.50, Currency: "NGN"}, pending)
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Payment.ID)
	assert.Equal(t, domain.MatchTierExact, result.Tier)
	assert.True(t, result.NeedsReview)
}

func TestMatchFeeAdjustedAmount(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 2515.50, "ord-aaa"),
	}

	// The bank kept its 50 naira fee, so the credit arrived short.
	result, err := m.Match(&ParsedEvent{Amount: 2465.50, Currency: "NGN"}, pending)
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Payment.ID)
	assert.Equal(t, domain.MatchTierFeeAdjusted, result.Tier)
	assert.True(t, result.NeedsReview)
}

func TestMatchFeeAdjustedShortCredit(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 9984, "ord-aaa"),
	}

	result, err := m.Match(&ParsedEvent{Amount: 9934, Currency: "NGN"}, pending)
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Payment.ID)
	assert.Equal(t, domain.MatchTierFeeAdjusted, result.Tier)

	// The direction is one way: a credit that came in over the asked
	// amount by the fee is not a fee adjustment.
	_, err = m.Match(&ParsedEvent{Amount: 10034, Currency: "NGN"}, pending)
	assert.ErrorIs(t, err, domain.ErrNoMatchingPayment)
}

func TestMatchAccountRefBeatsAmount(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 5000, "ord-aaa"),
		pendingPayment("p2", 5000, "ord-bbb"),
	}

	// Both payments match on amount, but the reference pins p2.
	result, err := m.Match(&ParsedEvent{Amount: 5000, GatewayRef: "ord-bbb"}, pending)
	require.NoError(t, err)
	assert.Equal(t, "p2", result.Payment.ID)
	assert.Equal(t, domain.MatchTierAccountRef, result.Tier)
	assert.False(t, result.NeedsReview)
}

func TestMatchAccountRefSubstring(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 5000, "ord-xyz789"),
	}

	result, err := m.Match(&ParsedEvent{Amount: 3000, GatewayRef: "BUD/ord-xyz789/2026"}, pending)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchTierAccountRef, result.Tier)
}

func TestMatchAmbiguousAmountsNeverGuess(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 5000, "ord-aaa"),
		pendingPayment("p2", 5000, "ord-bbb"),
	}

	_, err := m.Match(&ParsedEvent{Amount: 5000}, pending)
	assert.ErrorIs(t, err, domain.ErrAmbiguousMatch)
}

func TestMatchNothingMatches(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 100, "ord-aaa"),
	}

	_, err := m.Match(&ParsedEvent{Amount: 9999}, pending)
	assert.ErrorIs(t, err, domain.ErrNoMatchingPayment)
}

func TestMatchToleranceBoundary(t *testing.T) {
	m := newTestMatcher()
	pending := []*domain.Payment{
		pendingPayment("p1", 5000, ""),
	}

	// 0.99 off is within tolerance, 1.00 off is not.
	result, err := m.Match(&ParsedEvent{Amount: 5000.99}, pending)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchTierExact, result.Tier)

	_, err = m.Match(&ParsedEvent{Amount: 5001.00}, pending)
	assert.ErrorIs(t, err, domain.ErrNoMatchingPayment)
}
