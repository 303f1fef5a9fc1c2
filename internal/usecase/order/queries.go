package order

import (
	"context"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &orderdto.OrderOutput{
		Order:    *order,
		Progress: order.Progress(time.Now()),
	}, nil
}

func (uc *DefaultOrderUsecase) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]*orderdto.OrderOutput, error) {
	orders, err := uc.OrderRepo.GetOrdersByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	outputs := make([]*orderdto.OrderOutput, len(orders))
	for i, o := range orders {
		outputs[i] = &orderdto.OrderOutput{Order: *o, Progress: o.Progress(now)}
	}
	return outputs, nil
}
