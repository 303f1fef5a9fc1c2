package publisher

// OrderEvent mirrors every order and payment lifecycle change onto the
// event stream so downstream consumers (support tooling, analytics) see
// the same transitions the database records.
type OrderEvent struct {
	OrderID       string  `json:"order_id"`
	UserID        string  `json:"user_id"`
	Event         string  `json:"event"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	MatchTier     string  `json:"match_tier,omitempty"`
	NeedsReview   bool    `json:"needs_review,omitempty"`
}
