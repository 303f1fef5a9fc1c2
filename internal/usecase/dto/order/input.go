package orderdto

import "github.com/boostlab/smm-order-service/internal/domain"

type CreateOrderInput struct {
	UserID      string
	Platform    string
	ServiceType string
	ServiceID   string
	Link        string
	Quantity    int
	Method      domain.PaymentMethod
}
