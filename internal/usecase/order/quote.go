package order

import (
	"context"
	"fmt"

	"github.com/boostlab/smm-order-service/internal/domain"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

// QuoteOrder prices an order without creating it, for the storefront's
// live price preview.
func (uc *DefaultOrderUsecase) QuoteOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.QuoteOutput, error) {
	service, err := uc.resolveService(ctx, input)
	if err != nil {
		return nil, err
	}
	if input.Quantity < service.MinOrder || input.Quantity > service.MaxOrder {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			domain.ErrQuantityOutOfRange, input.Quantity, service.MinOrder, service.MaxOrder)
	}

	price, currency := uc.priceOrder(service, input.Quantity, input.Method)
	return &orderdto.QuoteOutput{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Quantity:    input.Quantity,
		Price:       price,
		Currency:    currency,
	}, nil
}
