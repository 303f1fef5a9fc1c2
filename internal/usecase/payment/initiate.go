package payment

import (
	"context"
	"fmt"

	"github.com/boostlab/smm-order-service/internal/domain"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
	"github.com/jaevor/go-nanoid"
)

// InitiatePayment provisions the collection channel for an order's
// pending payment. Bank transfer payments get a dedicated virtual
// account whose reference becomes the strong matching key; crypto
// payments get a USDT quote at the configured rate.
func (uc *DefaultPaymentUsecase) InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if payment.Status.IsTerminal() {
		return nil, domain.ErrPaymentAlreadySettled
	}

	refGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference generator: %w", err)
	}
	reference := "ord-" + refGenerator()

	switch input.Method {
	case domain.PaymentMethodNGN:
		account, err := uc.Gateway.CreateVirtualAccount(ctx, payment.Amount, payment.Currency, reference)
		if err != nil {
			uc.Metrics.RecordProviderError("budpay", "create_virtual_account")
			return nil, fmt.Errorf("creating virtual account: %w", err)
		}

		payment.Method = domain.PaymentMethodNGN
		payment.GatewayRef = account.Reference
		if err := uc.PaymentRepo.UpdatePendingPayment(ctx, payment); err != nil {
			return nil, err
		}

		return &paymentdto.InitiatePaymentOutput{
			Payment:        *payment,
			VirtualAccount: account,
		}, nil

	case domain.PaymentMethodCrypto:
		if uc.Pricing.UsdtNgnRate <= 0 {
			return nil, fmt.Errorf("usdt rate is not configured")
		}
		payment.Method = domain.PaymentMethodCrypto
		payment.GatewayRef = reference
		payment.ExchangeRate = uc.Pricing.UsdtNgnRate
		// Amounts quoted in naira convert at the configured rate; orders
		// priced in USDT already carry the payable amount.
		if payment.Currency == "NGN" {
			payment.CryptoAmount = payment.Amount / uc.Pricing.UsdtNgnRate
		} else {
			payment.CryptoAmount = payment.Amount
		}
		if err := uc.PaymentRepo.UpdatePendingPayment(ctx, payment); err != nil {
			return nil, err
		}

		return &paymentdto.InitiatePaymentOutput{Payment: *payment}, nil

	default:
		return nil, fmt.Errorf("unsupported payment method %q", input.Method)
	}
}
