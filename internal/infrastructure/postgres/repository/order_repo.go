package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/mappers"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrderWithPayment(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToGORMOrder(order)).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := tx.Create(mappers.ToGORMPayment(payment)).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var model models.OrderModel
	err := r.DB.WithContext(ctx).
		Preload("Payment").
		Preload("Service").
		Preload("Platform").
		First(&model, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	err := r.DB.WithContext(ctx).
		Preload("Payment").
		Preload("Service").
		Preload("Platform").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) FindDispatchedOrders(ctx context.Context) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.OrderStatusProcessing).
		Where("provider_order_id <> ''").
		Order("created_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	err := r.DB.WithContext(ctx).
		Joins("JOIN payments ON payments.order_id = orders.id").
		Where("orders.status = ?", domain.OrderStatusPending).
		Where("payments.status = ?", domain.PaymentStatusPending).
		Where("orders.created_at < ?", olderThan).
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

// ProcessOrderTransition runs one guarded status change atomically. The
// order row and its payment row are locked for the whole transaction, so
// concurrent matcher runs, admin actions and reconcile cycles serialize
// on the same order.
func (r *DefaultOrderRepository) ProcessOrderTransition(ctx context.Context, orderID string, newStatus domain.OrderStatus, apply func(order *domain.Order) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderModel models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&orderModel, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if !orderModel.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: order %s %s -> %s",
				domain.ErrIllegalTransition, orderID, orderModel.Status, newStatus)
		}

		var paymentModel models.PaymentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&paymentModel, "order_id = ?", orderID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order := mappers.ToDomainOrder(&orderModel)
		if err == nil {
			order.Payment = mappers.ToDomainPayment(&paymentModel)
		}

		if apply != nil {
			if err := apply(order); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"status":            newStatus,
			"provider_order_id": order.ProviderOrderID,
			"start_count":       order.StartCount,
			"remains":           order.Remains,
			"decline_reason":    order.DeclineReason,
			"dispatched_at":     order.DispatchedAt,
			"updated_at":        time.Now(),
		}
		return tx.Model(&models.OrderModel{}).
			Where("id = ?", orderID).
			Updates(updates).Error
	})
}

func (r *DefaultOrderRepository) UpdateOrderProgress(ctx context.Context, orderID string, startCount, remains int) error {
	return r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"start_count": startCount,
			"remains":     remains,
			"updated_at":  time.Now(),
		}).Error
}
