package mappers

import (
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
)

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:           payment.ID,
		OrderID:      payment.OrderID,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		Method:       payment.Method,
		Status:       payment.Status,
		GatewayRef:   payment.GatewayRef,
		CryptoAmount: payment.CryptoAmount,
		ExchangeRate: payment.ExchangeRate,
		CreatedAt:    payment.CreatedAt,
		UpdatedAt:    payment.UpdatedAt,
	}
}

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:           model.ID,
		OrderID:      model.OrderID,
		Amount:       model.Amount,
		Currency:     model.Currency,
		Method:       model.Method,
		Status:       model.Status,
		GatewayRef:   model.GatewayRef,
		CryptoAmount: model.CryptoAmount,
		ExchangeRate: model.ExchangeRate,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMTransaction(txn *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:              txn.ID,
		PaymentID:       txn.PaymentID,
		ExternalRef:     txn.ExternalRef,
		LocalRef:        txn.LocalRef,
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		Status:          txn.Status,
		AccountNumber:   txn.AccountNumber,
		BankName:        txn.BankName,
		Narration:       txn.Narration,
		MatchTier:       txn.MatchTier,
		NeedsReview:     txn.NeedsReview,
		PaidAt:          txn.PaidAt,
		RawPayload:      txn.RawPayload,
		WebhookReceived: txn.WebhookReceived,
		CreatedAt:       txn.CreatedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:              model.ID,
		PaymentID:       model.PaymentID,
		ExternalRef:     model.ExternalRef,
		LocalRef:        model.LocalRef,
		Amount:          model.Amount,
		Currency:        model.Currency,
		Status:          model.Status,
		AccountNumber:   model.AccountNumber,
		BankName:        model.BankName,
		Narration:       model.Narration,
		MatchTier:       model.MatchTier,
		NeedsReview:     model.NeedsReview,
		PaidAt:          model.PaidAt,
		RawPayload:      model.RawPayload,
		WebhookReceived: model.WebhookReceived,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMWebhookLog(log *domain.WebhookLog) *models.WebhookLogModel {
	return &models.WebhookLogModel{
		ID:              log.ID,
		Provider:        log.Provider,
		Event:           log.Event,
		Payload:         log.Payload,
		IPAddress:       log.IPAddress,
		UserAgent:       log.UserAgent,
		Processed:       log.Processed,
		ProcessingError: log.ProcessingError,
		PaymentID:       log.PaymentID,
		OrderID:         log.OrderID,
		TransactionID:   log.TransactionID,
		ReceivedAt:      log.ReceivedAt,
	}
}

func ToDomainWebhookLog(model *models.WebhookLogModel) *domain.WebhookLog {
	return &domain.WebhookLog{
		ID:              model.ID,
		Provider:        model.Provider,
		Event:           model.Event,
		Payload:         model.Payload,
		IPAddress:       model.IPAddress,
		UserAgent:       model.UserAgent,
		Processed:       model.Processed,
		ProcessingError: model.ProcessingError,
		PaymentID:       model.PaymentID,
		OrderID:         model.OrderID,
		TransactionID:   model.TransactionID,
		ReceivedAt:      model.ReceivedAt,
	}
}
