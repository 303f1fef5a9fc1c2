package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
)

// HTTPNotifier pushes user notifications to the configured endpoint.
// Delivery runs in its own goroutine and failures only get logged, so a
// dead push service never blocks payment or order processing.
type HTTPNotifier struct {
	pushURL string
	client  *http.Client
}

func NewHTTPNotifier(cfg config.Notifier) *HTTPNotifier {
	return &HTTPNotifier{
		pushURL: cfg.PushURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (n *HTTPNotifier) Notify(userID string, kind domain.NotificationKind, context map[string]string) {
	if n.pushURL == "" {
		return
	}

	go func() {
		body, err := json.Marshal(NotificationPayload{
			UserID:  userID,
			Kind:    string(kind),
			Context: context,
			SentAt:  time.Now(),
		})
		if err != nil {
			log.Printf("Failed to marshal notification: %v\n", err)
			return
		}

		req, err := http.NewRequest("POST", n.pushURL, bytes.NewBuffer(body))
		if err != nil {
			log.Printf("Failed to create notification request: %v\n", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			log.Printf("Notification push failed: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("Notification push returned status %d", resp.StatusCode)
		}
	}()
}
