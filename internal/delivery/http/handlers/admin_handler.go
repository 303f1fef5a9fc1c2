package handlers

import (
	"errors"
	"net/http"

	"github.com/boostlab/smm-order-service/internal/delivery/http/dto"
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/usecase/catalog"
	"github.com/boostlab/smm-order-service/internal/usecase/order"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the operator surface: dispatching paid orders,
// declining suspect ones and maintaining the service catalog.
type AdminHandler struct {
	orderUC   order.OrderUsecase
	catalogUC catalog.CatalogUsecase
}

func NewAdminHandler(orderUC order.OrderUsecase, catalogUC catalog.CatalogUsecase) *AdminHandler {
	return &AdminHandler{
		orderUC:   orderUC,
		catalogUC: catalogUC,
	}
}

func (h *AdminHandler) FulfillOrder(c *gin.Context) {
	out, err := h.orderUC.DispatchOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrPaymentNotCompleted), errors.Is(err, domain.ErrIllegalTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrProviderRejected):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(out))
}

func (h *AdminHandler) DeclineOrder(c *gin.Context) {
	var req dto.DeclineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.orderUC.DeclineOrder(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrIllegalTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

func (h *AdminHandler) SyncOrderStatus(c *gin.Context) {
	out, err := h.orderUC.SyncOrderStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(out))
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	status := domain.OrderStatus(c.DefaultQuery("status", string(domain.OrderStatusPending)))

	outs, err := h.orderUC.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]dto.OrderResponse, len(outs))
	for i, out := range outs {
		responses[i] = dto.ToOrderResponse(out)
	}
	c.JSON(http.StatusOK, gin.H{"orders": responses, "count": len(responses)})
}

func (h *AdminHandler) SyncServices(c *gin.Context) {
	report, err := h.catalogUC.SyncServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SyncServicesResponse{
		Fetched:  report.Fetched,
		Upserted: report.Upserted,
		Skipped:  report.Skipped,
	})
}

func (h *AdminHandler) ProviderBalance(c *gin.Context) {
	balance, err := h.catalogUC.GetProviderBalance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
