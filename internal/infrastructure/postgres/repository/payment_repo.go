package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/mappers"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var model models.PaymentModel
	err := r.DB.WithContext(ctx).First(&model, "id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var model models.PaymentModel
	err := r.DB.WithContext(ctx).First(&model, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) GetPaymentByGatewayRef(ctx context.Context, gatewayRef string) (*domain.Payment, error) {
	var model models.PaymentModel
	err := r.DB.WithContext(ctx).First(&model, "gateway_ref = ?", gatewayRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) FindPendingPaymentsByMethod(ctx context.Context, method domain.PaymentMethod) ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.PaymentStatusPending).
		Where("method = ?", method).
		Order("created_at ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&paymentModels[i])
	}
	return payments, nil
}

func (r *DefaultPaymentRepository) UpdatePendingPayment(ctx context.Context, payment *domain.Payment) error {
	result := r.DB.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", payment.ID, domain.PaymentStatusPending).
		Updates(map[string]interface{}{
			"amount":        payment.Amount,
			"method":        payment.Method,
			"gateway_ref":   payment.GatewayRef,
			"crypto_amount": payment.CryptoAmount,
			"exchange_rate": payment.ExchangeRate,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPaymentAlreadySettled
	}
	return nil
}

// SettlePayment moves a pending payment into a terminal status and records
// the settlement transaction in the same database transaction. A payment
// already out of PENDING is never touched again, which makes duplicate
// webhook deliveries harmless.
func (r *DefaultPaymentRepository) SettlePayment(ctx context.Context, settlement *domain.PaymentSettlement) (*domain.Transaction, error) {
	var created *models.TransactionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paymentModel models.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&paymentModel, "id = ?", settlement.PaymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPaymentNotFound
			}
			return err
		}

		if paymentModel.Status != domain.PaymentStatusPending {
			return domain.ErrPaymentAlreadySettled
		}

		txnModel := mappers.ToGORMTransaction(settlement.Transaction)
		txnModel.PaymentID = paymentModel.ID
		if txnModel.ID == "" {
			txnModel.ID = uuid.New().String()
		}
		if txnModel.CreatedAt.IsZero() {
			txnModel.CreatedAt = time.Now()
		}
		if err := tx.Create(txnModel).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		if err := tx.Model(&models.PaymentModel{}).
			Where("id = ?", paymentModel.ID).
			Updates(map[string]interface{}{
				"status":     settlement.NewStatus,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		created = txnModel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainTransaction(created), nil
}

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) GetByExternalRef(ctx context.Context, externalRef string) (*domain.Transaction, error) {
	var model models.TransactionModel
	err := r.DB.WithContext(ctx).First(&model, "external_ref = ?", externalRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetCompletedByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	err := r.DB.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Where("status = ?", domain.TransactionStatusCompleted).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

type DefaultWebhookLogRepository struct {
	DB *gorm.DB
}

func NewDefaultWebhookLogRepository(db *gorm.DB) *DefaultWebhookLogRepository {
	return &DefaultWebhookLogRepository{DB: db}
}

func (r *DefaultWebhookLogRepository) Record(ctx context.Context, log *domain.WebhookLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMWebhookLog(log)).Error
}

func (r *DefaultWebhookLogRepository) MarkOutcome(ctx context.Context, logID string, outcome *domain.WebhookOutcome) error {
	return r.DB.WithContext(ctx).
		Model(&models.WebhookLogModel{}).
		Where("id = ?", logID).
		Updates(map[string]interface{}{
			"processed":        outcome.Processed,
			"processing_error": outcome.Error,
			"payment_id":       outcome.PaymentID,
			"order_id":         outcome.OrderID,
			"transaction_id":   outcome.TransactionID,
		}).Error
}
