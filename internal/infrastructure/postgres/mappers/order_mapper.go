package mappers

import (
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:              order.ID,
		UserID:          order.UserID,
		PlatformID:      order.PlatformID,
		ServiceID:       order.ServiceID,
		Quantity:        order.Quantity,
		Link:            order.Link,
		Price:           order.Price,
		Currency:        order.Currency,
		Status:          order.Status,
		ProviderOrderID: order.ProviderOrderID,
		StartCount:      order.StartCount,
		Remains:         order.Remains,
		DeclineReason:   order.DeclineReason,
		DispatchedAt:    order.DispatchedAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:              model.ID,
		UserID:          model.UserID,
		PlatformID:      model.PlatformID,
		ServiceID:       model.ServiceID,
		Quantity:        model.Quantity,
		Link:            model.Link,
		Price:           model.Price,
		Currency:        model.Currency,
		Status:          model.Status,
		ProviderOrderID: model.ProviderOrderID,
		StartCount:      model.StartCount,
		Remains:         model.Remains,
		DeclineReason:   model.DeclineReason,
		DispatchedAt:    model.DispatchedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}

	if model.Payment != nil {
		order.Payment = ToDomainPayment(model.Payment)
	}
	if model.Service != nil {
		order.Service = ToDomainService(model.Service)
	}
	if model.Platform != nil {
		order.Platform = ToDomainPlatform(model.Platform)
	}

	return order
}
