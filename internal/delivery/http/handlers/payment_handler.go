package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/boostlab/smm-order-service/internal/delivery/http/dto"
	"github.com/boostlab/smm-order-service/internal/domain"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
	"github.com/boostlab/smm-order-service/internal/usecase/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUC payment.PaymentUsecase
}

func NewPaymentHandler(paymentUC payment.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Initiate provisions the collection channel for an order's payment,
// re-issuing the virtual account or crypto quote when called again
// before settlement.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.paymentUC.InitiatePayment(c.Request.Context(), &paymentdto.InitiatePaymentInput{
		OrderID: req.OrderID,
		Method:  domain.PaymentMethod(req.Method),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrPaymentAlreadySettled):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	resp := dto.InitiatePaymentResponse{Payment: dto.ToPaymentResponse(&out.Payment)}
	if out.VirtualAccount != nil {
		resp.VirtualAccount = &dto.VirtualAccountResponse{
			AccountNumber: out.VirtualAccount.AccountNumber,
			AccountName:   out.VirtualAccount.AccountName,
			BankName:      out.VirtualAccount.BankName,
			Reference:     out.VirtualAccount.Reference,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Verify re-checks a payment against the gateway by order id.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.paymentUC.VerifyPayment(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Settled: result.Settled,
		Payment: dto.ToPaymentResponse(&result.Payment),
	})
}

// Status reports a payment's state and its settlement transaction.
func (h *PaymentHandler) Status(c *gin.Context) {
	out, err := h.paymentUC.GetPaymentStatus(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp := dto.PaymentStatusResponse{Payment: dto.ToPaymentResponse(&out.Payment)}
	if out.Transaction != nil {
		resp.Transaction = &dto.TransactionResponse{
			ID:          out.Transaction.ID,
			ExternalRef: out.Transaction.ExternalRef,
			Amount:      out.Transaction.Amount,
			Currency:    out.Transaction.Currency,
			MatchTier:   string(out.Transaction.MatchTier),
			NeedsReview: out.Transaction.NeedsReview,
			PaidAt:      out.Transaction.PaidAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook receives gateway notifications. It always answers 200 so the
// gateway never retries into a storm; failures are recorded in the
// webhook log and surfaced through metrics instead.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("failed to read webhook body", "error", err.Error())
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	result, err := h.paymentUC.HandleWebhook(c.Request.Context(), &paymentdto.WebhookDelivery{
		Provider:   c.Param("provider"),
		Payload:    payload,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ReceivedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("webhook processing stopped",
			"provider", c.Param("provider"), "error", err.Error())
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "processed",
		"payment_id":     result.PaymentID,
		"order_id":       result.OrderID,
		"transaction_id": result.TransactionID,
	})
}
