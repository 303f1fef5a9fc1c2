package payment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
)

// ParsedEvent is the normalized form of one gateway webhook delivery.
// Every provider payload is reduced to this before matching, so the
// matcher never sees raw gateway JSON.
type ParsedEvent struct {
	Provider      string
	Event         string
	ExternalRef   string
	GatewayRef    string
	Amount        float64
	Currency      string
	AccountNumber string
	BankName      string
	Narration     string
	Status        string
	PaidAt        time.Time
}

// Succeeded reports whether the gateway considers the transfer final.
func (e *ParsedEvent) Succeeded() bool {
	return successStatus(e.Status)
}

func successStatus(status string) bool {
	switch strings.ToLower(status) {
	case "success", "successful", "complete", "completed":
		return true
	}
	return false
}

// Failed reports whether the gateway closed the transfer without the
// money arriving. Anything neither succeeded nor failed is in flight.
func (e *ParsedEvent) Failed() bool {
	switch strings.ToLower(e.Status) {
	case "failed", "error", "declined", "reversed":
		return true
	}
	return false
}

// rawAmount accepts the gateway's amount in any of its shapes: a bare
// number, a plain string, or a display string with thousands separators
// ("2,515.50").
type rawAmount string

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	*a = rawAmount(strings.Trim(string(b), `"`))
	return nil
}

type budpayWebhook struct {
	Notify     string `json:"notify"`
	NotifyType string `json:"notifyType"`
	Data       struct {
		Reference string    `json:"reference"`
		SessionID string    `json:"sessionid"`
		Amount    rawAmount `json:"amount"`
		Currency  string    `json:"currency"`
		Status    string    `json:"status"`
		CrAccount string    `json:"craccount"`
		BankName  string    `json:"bankname"`
		Narration string    `json:"narration"`
		PaidAt    string    `json:"paid_at"`
	} `json:"data"`
}

// ParseWebhookEvent turns a raw provider payload into a ParsedEvent.
// Unknown providers and payloads missing the fields matching depends on
// come back as ErrMalformedPayload.
func ParseWebhookEvent(provider string, payload []byte) (*ParsedEvent, error) {
	switch provider {
	case "budpay":
		return parseBudpayEvent(payload)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrMalformedPayload, provider)
	}
}

func parseBudpayEvent(payload []byte) (*ParsedEvent, error) {
	var hook budpayWebhook
	if err := json.Unmarshal(payload, &hook); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(string(hook.Data.Amount), ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable amount %q", domain.ErrMalformedPayload, hook.Data.Amount)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: non-positive amount", domain.ErrMalformedPayload)
	}

	externalRef := hook.Data.SessionID
	if externalRef == "" {
		externalRef = hook.Data.Reference
	}
	if externalRef == "" {
		return nil, fmt.Errorf("%w: missing transfer reference", domain.ErrMalformedPayload)
	}

	event := hook.Notify
	if hook.NotifyType != "" {
		event = hook.Notify + "." + hook.NotifyType
	}

	paidAt := time.Now()
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, hook.Data.PaidAt); err == nil {
			paidAt = t
			break
		}
	}

	return &ParsedEvent{
		Provider:      "budpay",
		Event:         event,
		ExternalRef:   externalRef,
		GatewayRef:    hook.Data.Reference,
		Amount:        amount,
		Currency:      hook.Data.Currency,
		AccountNumber: hook.Data.CrAccount,
		BankName:      hook.Data.BankName,
		Narration:     hook.Data.Narration,
		Status:        hook.Data.Status,
		PaidAt:        paidAt,
	}, nil
}

// MatchResult is the matcher's verdict for one event: the payment the
// rules picked, the rule that picked it and whether an operator should
// double check the settlement.
type MatchResult struct {
	Payment     *domain.Payment
	Tier        domain.MatchTier
	NeedsReview bool
}

type candidate struct {
	payment *domain.Payment
	tier    domain.MatchTier
}

// Matcher evaluates a parsed event against the pool of pending
// payments. All thresholds come from config at construction time.
type Matcher struct {
	tolerance   float64
	transferFee float64
}

func NewMatcher(cfg config.Matcher) *Matcher {
	return &Matcher{
		tolerance:   cfg.AmountTolerance,
		transferFee: cfg.TransferFee,
	}
}

// Match runs every rule over the pending pool and applies the selection
// policy: an account reference hit beats any amount heuristic, and a
// rule only wins automatically when it points at exactly one payment.
// Amount-based wins are settled but flagged for review. Ambiguity never
// guesses; it returns ErrAmbiguousMatch so an operator decides.
func (m *Matcher) Match(event *ParsedEvent, pending []*domain.Payment) (*MatchResult, error) {
	var refHits, amountHits []candidate

	for _, p := range pending {
		if tier, ok := m.evaluate(event, p); ok {
			c := candidate{payment: p, tier: tier}
			if tier == domain.MatchTierAccountRef {
				refHits = append(refHits, c)
			} else {
				amountHits = append(amountHits, c)
			}
		}
	}

	switch {
	case len(refHits) == 1:
		return &MatchResult{Payment: refHits[0].payment, Tier: domain.MatchTierAccountRef}, nil
	case len(refHits) > 1:
		return nil, fmt.Errorf("%w: %d payments share account ref %s",
			domain.ErrAmbiguousMatch, len(refHits), event.GatewayRef)
	case len(amountHits) == 1:
		return &MatchResult{
			Payment:     amountHits[0].payment,
			Tier:        amountHits[0].tier,
			NeedsReview: true,
		}, nil
	case len(amountHits) > 1:
		return nil, fmt.Errorf("%w: %d pending payments match amount %.2f",
			domain.ErrAmbiguousMatch, len(amountHits), event.Amount)
	default:
		return nil, domain.ErrNoMatchingPayment
	}
}

// evaluate runs the rules for one payment, strongest first.
func (m *Matcher) evaluate(event *ParsedEvent, p *domain.Payment) (domain.MatchTier, bool) {
	if m.accountRefMatches(event, p) {
		return domain.MatchTierAccountRef, true
	}
	if math.Abs(p.Amount-event.Amount) < m.tolerance {
		return domain.MatchTierExact, true
	}
	// The bank deducts its transfer fee before crediting the virtual
	// account, so the gateway reports fee less than the payment asks.
	if math.Abs(p.Amount-(event.Amount+m.transferFee)) < m.tolerance {
		return domain.MatchTierFeeAdjusted, true
	}
	return "", false
}

// accountRefMatches ties the event to the virtual account issued at
// payment initiation. The gateway sometimes embeds the reference inside
// a longer value, so containment counts in both directions.
func (m *Matcher) accountRefMatches(event *ParsedEvent, p *domain.Payment) bool {
	if p.GatewayRef == "" {
		return false
	}
	if event.GatewayRef != "" &&
		(event.GatewayRef == p.GatewayRef ||
			strings.Contains(event.GatewayRef, p.GatewayRef) ||
			strings.Contains(p.GatewayRef, event.GatewayRef)) {
		return true
	}
	if event.AccountNumber != "" && strings.Contains(p.GatewayRef, event.AccountNumber) {
		return true
	}
	return false
}
