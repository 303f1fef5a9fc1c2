package notifier

import "time"

type NotificationPayload struct {
	UserID  string            `json:"user_id"`
	Kind    string            `json:"kind"`
	Context map[string]string `json:"context,omitempty"`
	SentAt  time.Time         `json:"sent_at"`
}
