package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics holds every counter the payment and fulfillment pipeline
// reports.
type OrderMetrics struct {
	WebhooksReceivedTotal  prometheus.CounterVec
	WebhooksProcessedTotal prometheus.CounterVec
	WebhooksUnmatchedTotal prometheus.CounterVec

	PaymentsMatchedTotal       prometheus.CounterVec
	PaymentsMatchedAmountTotal prometheus.CounterVec
	MatchDuration              prometheus.HistogramVec

	OrdersCreatedTotal    prometheus.CounterVec
	OrdersDispatchedTotal prometheus.CounterVec
	OrdersCompletedTotal  prometheus.CounterVec
	OrdersCancelledTotal  prometheus.CounterVec
	OrdersFailedTotal     prometheus.CounterVec

	ReconcileCyclesTotal prometheus.CounterVec
	ReconcileDuration    prometheus.HistogramVec

	ProviderErrorsTotal prometheus.CounterVec
}

func NewOrderMetrics() *OrderMetrics {
	return &OrderMetrics{
		WebhooksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_received_total",
				Help: "Total webhook deliveries received, before any processing",
			},
			[]string{"provider"},
		),

		WebhooksProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_processed_total",
				Help: "Webhook deliveries by processing outcome",
			},
			[]string{"provider", "outcome"},
		),

		WebhooksUnmatchedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_unmatched_total",
				Help: "Payment events that matched no pending payment",
			},
			[]string{"provider", "reason"},
		),

		PaymentsMatchedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_matched_total",
				Help: "Payments settled by the matcher, labelled with the rule that won",
			},
			[]string{"tier"},
		),

		PaymentsMatchedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_matched_amount_total",
				Help: "Total settled payment amount by currency",
			},
			[]string{"currency"},
		),

		MatchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_match_duration_seconds",
				Help:    "Time spent matching one payment event against pending payments",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"provider"},
		),

		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Orders created, by platform and payment method",
			},
			[]string{"platform", "method"},
		),

		OrdersDispatchedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_dispatched_total",
				Help: "Orders submitted to the fulfillment provider",
			},
			[]string{"provider"},
		),

		OrdersCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_completed_total",
				Help: "Orders the provider reported as fully delivered",
			},
			[]string{"provider"},
		),

		OrdersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "Orders cancelled, by trigger",
			},
			[]string{"reason"},
		),

		OrdersFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "Orders the provider reported as failed",
			},
			[]string{"provider"},
		),

		ReconcileCyclesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconcile_cycles_total",
				Help: "Reconciliation poller cycles by outcome",
			},
			[]string{"outcome"},
		),

		ReconcileDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reconcile_cycle_duration_seconds",
				Help:    "Wall time of one reconciliation cycle",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{},
		),

		ProviderErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_errors_total",
				Help: "Upstream provider and gateway call failures",
			},
			[]string{"provider", "op"},
		),
	}
}

func (m *OrderMetrics) RecordWebhookReceived(provider string) {
	m.WebhooksReceivedTotal.WithLabelValues(provider).Inc()
}

func (m *OrderMetrics) RecordWebhookProcessed(provider, outcome string) {
	m.WebhooksProcessedTotal.WithLabelValues(provider, outcome).Inc()
}

func (m *OrderMetrics) RecordWebhookUnmatched(provider, reason string) {
	m.WebhooksUnmatchedTotal.WithLabelValues(provider, reason).Inc()
}

func (m *OrderMetrics) RecordPaymentMatched(tier, currency string, amount float64) {
	m.PaymentsMatchedTotal.WithLabelValues(tier).Inc()
	m.PaymentsMatchedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *OrderMetrics) RecordMatchDuration(provider string, seconds float64) {
	m.MatchDuration.WithLabelValues(provider).Observe(seconds)
}

func (m *OrderMetrics) RecordOrderCreated(platform, method string) {
	m.OrdersCreatedTotal.WithLabelValues(platform, method).Inc()
}

func (m *OrderMetrics) RecordOrderDispatched(provider string) {
	m.OrdersDispatchedTotal.WithLabelValues(provider).Inc()
}

func (m *OrderMetrics) RecordOrderCompleted(provider string) {
	m.OrdersCompletedTotal.WithLabelValues(provider).Inc()
}

func (m *OrderMetrics) RecordOrderCancelled(reason string) {
	m.OrdersCancelledTotal.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) RecordOrderFailed(provider string) {
	m.OrdersFailedTotal.WithLabelValues(provider).Inc()
}

func (m *OrderMetrics) RecordReconcileCycle(outcome string, seconds float64) {
	m.ReconcileCyclesTotal.WithLabelValues(outcome).Inc()
	m.ReconcileDuration.WithLabelValues().Observe(seconds)
}

func (m *OrderMetrics) RecordProviderError(provider, op string) {
	m.ProviderErrorsTotal.WithLabelValues(provider, op).Inc()
}
