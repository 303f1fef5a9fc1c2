package dto

import (
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type OrderResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	ServiceID       string            `json:"service_id"`
	Link            string            `json:"link"`
	Quantity        int               `json:"quantity"`
	Price           float64           `json:"price"`
	Currency        string            `json:"currency"`
	Status          string            `json:"status"`
	ProviderOrderID string            `json:"provider_order_id,omitempty"`
	DeclineReason   string            `json:"decline_reason,omitempty"`
	Payment         *PaymentResponse  `json:"payment,omitempty"`
	Progress        *ProgressResponse `json:"progress,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

type PaymentResponse struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Method       string  `json:"method"`
	Status       string  `json:"status"`
	GatewayRef   string  `json:"gateway_ref,omitempty"`
	CryptoAmount float64 `json:"crypto_amount,omitempty"`
}

type ProgressResponse struct {
	Delivered          int    `json:"delivered"`
	Remains            int    `json:"remains"`
	Percentage         int    `json:"percentage"`
	EstimatedRemaining string `json:"estimated_remaining,omitempty"`
}

type VirtualAccountResponse struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
	Reference     string `json:"reference"`
}

type InitiatePaymentResponse struct {
	Payment        PaymentResponse         `json:"payment"`
	VirtualAccount *VirtualAccountResponse `json:"virtual_account,omitempty"`
}

type VerifyPaymentResponse struct {
	Settled bool            `json:"settled"`
	Payment PaymentResponse `json:"payment"`
}

type QuoteResponse struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

type PaymentStatusResponse struct {
	Payment     PaymentResponse      `json:"payment"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	ExternalRef string    `json:"external_ref"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	MatchTier   string    `json:"match_tier"`
	NeedsReview bool      `json:"needs_review"`
	PaidAt      time.Time `json:"paid_at"`
}

type SyncServicesResponse struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Skipped  int `json:"skipped"`
}

func ToOrderResponse(out *orderdto.OrderOutput) OrderResponse {
	resp := OrderResponse{
		ID:              out.Order.ID,
		UserID:          out.Order.UserID,
		ServiceID:       out.Order.ServiceID,
		Link:            out.Order.Link,
		Quantity:        out.Order.Quantity,
		Price:           out.Order.Price,
		Currency:        out.Order.Currency,
		Status:          string(out.Order.Status),
		ProviderOrderID: out.Order.ProviderOrderID,
		DeclineReason:   out.Order.DeclineReason,
		CreatedAt:       out.Order.CreatedAt,
	}
	if out.Order.Payment != nil {
		p := ToPaymentResponse(out.Order.Payment)
		resp.Payment = &p
	}
	if out.Order.Status == domain.OrderStatusProcessing || out.Order.Status == domain.OrderStatusCompleted {
		progress := ProgressResponse{
			Delivered:  out.Progress.Delivered,
			Remains:    out.Progress.Remains,
			Percentage: out.Progress.Percentage,
		}
		if out.Progress.HasEstimate {
			progress.EstimatedRemaining = out.Progress.EstimatedRemaining.Round(time.Second).String()
		}
		resp.Progress = &progress
	}
	return resp
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Method:       string(p.Method),
		Status:       string(p.Status),
		GatewayRef:   p.GatewayRef,
		CryptoAmount: p.CryptoAmount,
	}
}
