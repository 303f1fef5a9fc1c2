package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/boostlab/smm-order-service/internal/domain"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// VerifyPayment asks the gateway directly about a payment's reference,
// covering the case where the webhook never arrived. A transfer the
// gateway reports as final settles exactly like a webhook settlement,
// except the verification path is a strong key and needs no review.
func (uc *DefaultPaymentUsecase) VerifyPayment(ctx context.Context, orderID string) (*paymentdto.VerifyResult, error) {
	payment, err := uc.PaymentRepo.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if payment.Status.IsTerminal() {
		return &paymentdto.VerifyResult{Payment: *payment, Settled: payment.Status == domain.PaymentStatusCompleted}, nil
	}
	if payment.GatewayRef == "" {
		return nil, fmt.Errorf("payment %s was never initiated", payment.ID)
	}

	info, err := uc.Gateway.VerifyPayment(ctx, payment.GatewayRef)
	if err != nil {
		uc.Metrics.RecordProviderError("budpay", "verify")
		return nil, fmt.Errorf("gateway verification: %w", err)
	}

	if !successStatus(info.Status) {
		// Verification sometimes lags the credit; the virtual account's
		// transaction listing is the fallback before giving up.
		fallback := uc.findAccountCredit(ctx, payment)
		if fallback == nil {
			return &paymentdto.VerifyResult{Payment: *payment, Settled: false, GatewayInfo: info}, nil
		}
		info = fallback
	}

	// Same idempotency key as the webhook path.
	existing, err := uc.TxnRepo.GetByExternalRef(ctx, info.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		settled, err := uc.PaymentRepo.GetPaymentByID(ctx, existing.PaymentID)
		if err != nil {
			return nil, err
		}
		return &paymentdto.VerifyResult{Payment: *settled, Settled: true, GatewayInfo: info}, nil
	}

	txn := &domain.Transaction{
		ID:          uuid.New().String(),
		PaymentID:   payment.ID,
		ExternalRef: info.Reference,
		LocalRef:    payment.GatewayRef,
		Amount:      info.Amount,
		Currency:    info.Currency,
		Status:      domain.TransactionStatusCompleted,
		MatchTier:   domain.MatchTierAccountRef,
		PaidAt:      info.PaidAt,
	}

	if _, err := uc.PaymentRepo.SettlePayment(ctx, &domain.PaymentSettlement{
		PaymentID:   payment.ID,
		NewStatus:   domain.PaymentStatusCompleted,
		Transaction: txn,
	}); err != nil {
		return nil, err
	}

	uc.Metrics.RecordPaymentMatched(string(domain.MatchTierAccountRef), info.Currency, info.Amount)
	uc.notifyPaymentReceived(payment, &ParsedEvent{Amount: info.Amount, Currency: info.Currency})

	payment.Status = domain.PaymentStatusCompleted
	return &paymentdto.VerifyResult{Payment: *payment, Settled: true, GatewayInfo: info}, nil
}

// findAccountCredit scans the virtual account's transaction listing for
// a successful credit of the expected amount, within the same tolerance
// the matcher uses.
func (uc *DefaultPaymentUsecase) findAccountCredit(ctx context.Context, payment *domain.Payment) *domain.GatewayTransaction {
	txns, err := uc.Gateway.ListAccountTransactions(ctx, payment.GatewayRef)
	if err != nil {
		uc.Metrics.RecordProviderError("budpay", "account_transactions")
		slog.Warn("account transaction listing failed", "payment_id", payment.ID, "error", err.Error())
		return nil
	}

	for _, txn := range txns {
		if successStatus(txn.Status) && math.Abs(txn.Amount-payment.Amount) < uc.Matcher.tolerance {
			return txn
		}
	}
	return nil
}
