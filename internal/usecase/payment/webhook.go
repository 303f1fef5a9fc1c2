package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// HandleWebhook is the ingestion pipeline for gateway notifications.
// The delivery is recorded before anything interprets it, and the
// recorded row gets its outcome exactly once, whichever way processing
// ends. A delivery that matches nothing is still a permanent record.
func (uc *DefaultPaymentUsecase) HandleWebhook(ctx context.Context, delivery *paymentdto.WebhookDelivery) (*paymentdto.WebhookResult, error) {
	uc.Metrics.RecordWebhookReceived(delivery.Provider)
	start := time.Now()

	receivedAt := delivery.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	wlog := &domain.WebhookLog{
		Provider:   delivery.Provider,
		Payload:    string(delivery.Payload),
		IPAddress:  delivery.IPAddress,
		UserAgent:  delivery.UserAgent,
		ReceivedAt: receivedAt,
	}
	if err := uc.WebhookLogRepo.Record(ctx, wlog); err != nil {
		return nil, fmt.Errorf("failed to record webhook: %w", err)
	}

	outcome := &domain.WebhookOutcome{}
	result, procErr := uc.processDelivery(ctx, delivery, wlog, outcome)

	// Processed means the pipeline ran, not that it settled anything; a
	// delivery that failed is closed with the error attached, never left
	// looking unhandled.
	outcome.Processed = true
	if procErr != nil {
		outcome.Error = procErr.Error()
	}
	if err := uc.WebhookLogRepo.MarkOutcome(ctx, wlog.ID, outcome); err != nil {
		slog.Error("failed to mark webhook outcome", "log_id", wlog.ID, "error", err.Error())
	}

	uc.Metrics.RecordMatchDuration(delivery.Provider, time.Since(start).Seconds())
	uc.Metrics.RecordWebhookProcessed(delivery.Provider, outcomeLabel(procErr))

	if result != nil {
		result.LogID = wlog.ID
	}
	return result, procErr
}

func (uc *DefaultPaymentUsecase) processDelivery(
	ctx context.Context,
	delivery *paymentdto.WebhookDelivery,
	wlog *domain.WebhookLog,
	outcome *domain.WebhookOutcome,
) (*paymentdto.WebhookResult, error) {

	event, err := ParseWebhookEvent(delivery.Provider, delivery.Payload)
	if err != nil {
		return nil, err
	}
	wlog.Event = event.Event

	if !event.Succeeded() && !event.Failed() {
		slog.Info("ignoring non-final gateway event",
			"provider", event.Provider, "status", event.Status, "ref", event.ExternalRef)
		return nil, nil
	}

	// Duplicate deliveries collapse onto the first settlement.
	existing, err := uc.TxnRepo.GetByExternalRef(ctx, event.ExternalRef)
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}
	if existing != nil {
		outcome.PaymentID = existing.PaymentID
		outcome.TransactionID = existing.ID
		return nil, fmt.Errorf("%w: external ref %s", domain.ErrAlreadyProcessed, event.ExternalRef)
	}

	pending, err := uc.PaymentRepo.FindPendingPaymentsByMethod(ctx, domain.PaymentMethodNGN)
	if err != nil {
		return nil, fmt.Errorf("loading pending payments: %w", err)
	}

	match, err := uc.Matcher.Match(event, pending)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingPayment) {
			uc.Metrics.RecordWebhookUnmatched(event.Provider, "no_candidate")
		} else if errors.Is(err, domain.ErrAmbiguousMatch) {
			uc.Metrics.RecordWebhookUnmatched(event.Provider, "ambiguous")
		}
		return nil, err
	}

	txn, err := uc.settleMatch(ctx, event, match, wlog.Payload)
	if err != nil {
		return nil, err
	}

	outcome.PaymentID = match.Payment.ID
	outcome.OrderID = match.Payment.OrderID
	outcome.TransactionID = txn.ID

	if event.Failed() {
		uc.notifyPaymentFailed(match.Payment, event)
	} else {
		uc.Metrics.RecordPaymentMatched(string(match.Tier), event.Currency, event.Amount)
		uc.notifyPaymentReceived(match.Payment, event)
	}

	return &paymentdto.WebhookResult{
		PaymentID:     match.Payment.ID,
		OrderID:       match.Payment.OrderID,
		TransactionID: txn.ID,
		MatchTier:     match.Tier,
		NeedsReview:   match.NeedsReview,
	}, nil
}

// settleMatch persists the settlement for a winning candidate. The
// repository guards on the payment still being PENDING, so a race
// between two deliveries produces exactly one transaction. A failed
// gateway event settles the same way, just into FAILED.
func (uc *DefaultPaymentUsecase) settleMatch(ctx context.Context, event *ParsedEvent, match *MatchResult, rawPayload string) (*domain.Transaction, error) {
	txnStatus := domain.TransactionStatusCompleted
	paymentStatus := domain.PaymentStatusCompleted
	if event.Failed() {
		txnStatus = domain.TransactionStatusFailed
		paymentStatus = domain.PaymentStatusFailed
	}

	txn := &domain.Transaction{
		ID:              uuid.New().String(),
		PaymentID:       match.Payment.ID,
		ExternalRef:     event.ExternalRef,
		LocalRef:        match.Payment.GatewayRef,
		Amount:          event.Amount,
		Currency:        event.Currency,
		Status:          txnStatus,
		AccountNumber:   event.AccountNumber,
		BankName:        event.BankName,
		Narration:       event.Narration,
		MatchTier:       match.Tier,
		NeedsReview:     match.NeedsReview,
		PaidAt:          event.PaidAt,
		RawPayload:      rawPayload,
		WebhookReceived: true,
	}

	settled, err := uc.PaymentRepo.SettlePayment(ctx, &domain.PaymentSettlement{
		PaymentID:   match.Payment.ID,
		NewStatus:   paymentStatus,
		Transaction: txn,
	})
	if err != nil {
		return nil, fmt.Errorf("settling payment %s: %w", match.Payment.ID, err)
	}
	return settled, nil
}

// notifyPaymentFailed tells the customer the transfer bounced so they
// can retry. No order event fires; the order simply stays unpaid.
func (uc *DefaultPaymentUsecase) notifyPaymentFailed(p *domain.Payment, event *ParsedEvent) {
	uc.Notifier.Notify(uc.orderUserID(p.OrderID), domain.NotifyPaymentFailed, map[string]string{
		"order_id": p.OrderID,
		"amount":   fmt.Sprintf("%.2f", event.Amount),
		"currency": event.Currency,
		"status":   event.Status,
	})
}

// notifyPaymentReceived tells the customer their money arrived. Orders
// are not dispatched from here; fulfillment waits for an operator.
func (uc *DefaultPaymentUsecase) notifyPaymentReceived(p *domain.Payment, event *ParsedEvent) {
	uc.Notifier.Notify(uc.orderUserID(p.OrderID), domain.NotifyPaymentReceived, map[string]string{
		"order_id": p.OrderID,
		"amount":   fmt.Sprintf("%.2f", event.Amount),
		"currency": event.Currency,
	})

	go func(ev publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrderEvent(uc.OrderTopic, ev); err != nil {
			slog.Error("failed to publish OrderEvent:payment_received", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:       p.OrderID,
		Event:         "payment_received",
		PaymentStatus: string(domain.PaymentStatusCompleted),
		Amount:        event.Amount,
		Currency:      event.Currency,
	})
}

func (uc *DefaultPaymentUsecase) orderUserID(orderID string) string {
	order, err := uc.OrderRepo.GetOrderByID(context.Background(), orderID)
	if err != nil {
		slog.Error("failed to resolve order for notification", "order_id", orderID, "error", err.Error())
		return ""
	}
	return order.UserID
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "processed"
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return "duplicate"
	case errors.Is(err, domain.ErrNoMatchingPayment):
		return "unmatched"
	case errors.Is(err, domain.ErrAmbiguousMatch):
		return "ambiguous"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed"
	default:
		return "error"
	}
}
