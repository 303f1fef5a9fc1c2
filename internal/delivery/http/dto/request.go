package dto

type CreateOrderRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Platform    string `json:"platform"`
	ServiceType string `json:"service_type"`
	ServiceID   string `json:"service_id"`
	Link        string `json:"link" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Method      string `json:"method" binding:"required,oneof=NGN CRYPTO"`
}

type DeclineOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type InitiatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required,oneof=NGN CRYPTO"`
}

type VerifyPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}
