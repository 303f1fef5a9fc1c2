package payment

import (
	"context"

	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
)

// GetPaymentStatus reports a payment's current state plus its settlement
// transaction once one exists.
func (uc *DefaultPaymentUsecase) GetPaymentStatus(ctx context.Context, orderID string) (*paymentdto.PaymentStatusOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out := &paymentdto.PaymentStatusOutput{Payment: *payment}
	txn, err := uc.TxnRepo.GetCompletedByPaymentID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	out.Transaction = txn
	return out, nil
}
