package orderdto

import "github.com/boostlab/smm-order-service/internal/domain"

type OrderOutput struct {
	Order    domain.Order
	Progress domain.OrderProgress
}

// QuoteOutput is a price preview; nothing is persisted for a quote.
type QuoteOutput struct {
	ServiceID   string
	ServiceName string
	Quantity    int
	Price       float64
	Currency    string
}
