package domain

import "time"

// WebhookLog is the append-only record of one inbound gateway
// notification. It is written before any interpretation runs, so a crash
// mid-processing still leaves an audit trail.
type WebhookLog struct {
	ID              string
	Provider        string
	Event           string
	Payload         string
	IPAddress       string
	UserAgent       string
	Processed       bool
	ProcessingError string
	PaymentID       string
	OrderID         string
	TransactionID   string
	ReceivedAt      time.Time
}

// WebhookOutcome is attached to a WebhookLog once processing finished,
// on both the success and the failure path.
type WebhookOutcome struct {
	Processed     bool
	Error         string
	PaymentID     string
	OrderID       string
	TransactionID string
}
