package domain

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrServiceNotFound       = errors.New("service not found")
	ErrIllegalTransition     = errors.New("illegal status transition")
	ErrPaymentNotCompleted   = errors.New("order payment is not completed")
	ErrPaymentAlreadySettled = errors.New("payment already settled")
	ErrAlreadyProcessed      = errors.New("event already processed")
	ErrNoMatchingPayment     = errors.New("no matching pending payment")
	ErrAmbiguousMatch        = errors.New("multiple pending payments match")
	ErrMalformedPayload      = errors.New("malformed webhook payload")
	ErrQuantityOutOfRange    = errors.New("quantity outside service limits")
	ErrProviderRejected      = errors.New("provider rejected the order")
)
