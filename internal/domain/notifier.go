package domain

type NotificationKind string

const (
	NotifyPaymentReceived NotificationKind = "payment_received"
	NotifyPaymentFailed   NotificationKind = "payment_failed"
	NotifyOrderProcessing NotificationKind = "order_processing"
	NotifyOrderCompleted  NotificationKind = "order_completed"
	NotifyOrderCancelled  NotificationKind = "order_cancelled"
	NotifyOrderFailed     NotificationKind = "order_failed"
	NotifyOrderPartial    NotificationKind = "order_partial"
)

// Notifier delivers a user-facing notification. Delivery is best effort:
// implementations log failures and never propagate them, so a broken
// notification channel can not roll back a payment or order transition.
type Notifier interface {
	Notify(userID string, kind NotificationKind, context map[string]string)
}
