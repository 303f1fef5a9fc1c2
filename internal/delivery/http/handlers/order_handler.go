package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/boostlab/smm-order-service/internal/delivery/http/dto"
	"github.com/boostlab/smm-order-service/internal/domain"
	orderdto "github.com/boostlab/smm-order-service/internal/usecase/dto/order"
	paymentdto "github.com/boostlab/smm-order-service/internal/usecase/dto/payment"
	"github.com/boostlab/smm-order-service/internal/usecase/order"
	"github.com/boostlab/smm-order-service/internal/usecase/payment"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUC   order.OrderUsecase
	paymentUC payment.PaymentUsecase
}

func NewOrderHandler(orderUC order.OrderUsecase, paymentUC payment.PaymentUsecase) *OrderHandler {
	return &OrderHandler{
		orderUC:   orderUC,
		paymentUC: paymentUC,
	}
}

// CreateOrder creates the order and immediately initiates its payment,
// so the response carries the virtual account to pay into.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.ServiceID == "" && (req.Platform == "" || req.ServiceType == "") {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "either service_id or platform and service_type are required"})
		return
	}

	out, err := h.orderUC.CreateOrder(c.Request.Context(), &orderdto.CreateOrderInput{
		UserID:      req.UserID,
		Platform:    req.Platform,
		ServiceType: req.ServiceType,
		ServiceID:   req.ServiceID,
		Link:        req.Link,
		Quantity:    req.Quantity,
		Method:      domain.PaymentMethod(req.Method),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrQuantityOutOfRange):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	initiated, err := h.paymentUC.InitiatePayment(c.Request.Context(), &paymentdto.InitiatePaymentInput{
		OrderID: out.Order.ID,
		Method:  domain.PaymentMethod(req.Method),
	})
	if err != nil {
		// The order exists; payment can be re-initiated via verify flow.
		c.JSON(http.StatusCreated, gin.H{
			"order":         dto.ToOrderResponse(out),
			"payment_error": err.Error(),
		})
		return
	}

	resp := dto.InitiatePaymentResponse{Payment: dto.ToPaymentResponse(&initiated.Payment)}
	if initiated.VirtualAccount != nil {
		resp.VirtualAccount = &dto.VirtualAccountResponse{
			AccountNumber: initiated.VirtualAccount.AccountNumber,
			AccountName:   initiated.VirtualAccount.AccountName,
			BankName:      initiated.VirtualAccount.BankName,
			Reference:     initiated.VirtualAccount.Reference,
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   dto.ToOrderResponse(out),
		"payment": resp,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	out, err := h.orderUC.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(out))
}

// GetOrderStatus returns just the delivery progress of an order.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	out, err := h.orderUC.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	progress := dto.ProgressResponse{
		Delivered:  out.Progress.Delivered,
		Remains:    out.Progress.Remains,
		Percentage: out.Progress.Percentage,
	}
	if out.Progress.HasEstimate {
		progress.EstimatedRemaining = out.Progress.EstimatedRemaining.Round(time.Second).String()
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id": out.Order.ID,
		"status":   string(out.Order.Status),
		"progress": progress,
	})
}

// Quote prices an order from query parameters without creating it.
func (h *OrderHandler) Quote(c *gin.Context) {
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "quantity must be a positive integer"})
		return
	}
	serviceID := c.Query("service_id")
	platform := c.Query("platform")
	serviceType := c.Query("service_type")
	if serviceID == "" && (platform == "" || serviceType == "") {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "either service_id or platform and service_type are required"})
		return
	}
	method := domain.PaymentMethod(c.DefaultQuery("method", string(domain.PaymentMethodNGN)))

	quote, err := h.orderUC.QuoteOrder(c.Request.Context(), &orderdto.CreateOrderInput{
		Platform:    platform,
		ServiceType: serviceType,
		ServiceID:   serviceID,
		Quantity:    quantity,
		Method:      method,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrQuantityOutOfRange):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		ServiceID:   quote.ServiceID,
		ServiceName: quote.ServiceName,
		Quantity:    quote.Quantity,
		Price:       quote.Price,
		Currency:    quote.Currency,
	})
}

// VerifyPayment lets the customer poll the gateway when a webhook went
// missing.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	result, err := h.paymentUC.VerifyPayment(c.Request.Context(), c.Param("id"))
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
