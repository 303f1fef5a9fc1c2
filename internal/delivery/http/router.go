package http

import (
	"net/http"

	"github.com/boostlab/smm-order-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Order   *handlers.OrderHandler
	Payment *handlers.PaymentHandler
	Admin   *handlers.AdminHandler
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	registerV1Routes(v1, h)

	return router
}

func registerV1Routes(router *gin.RouterGroup, h Handlers) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("/pricing", h.Order.Quote)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/status", h.Order.GetOrderStatus)
		orders.POST("/:id/verify", h.Order.VerifyPayment)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/initiate", h.Payment.Initiate)
		payments.POST("/verify", h.Payment.Verify)
		payments.GET("/:orderId/status", h.Payment.Status)
		payments.POST("/webhook/:provider", h.Payment.Webhook)
	}

	admin := router.Group("/admin")
	{
		admin.GET("/orders", h.Admin.ListOrders)
		admin.POST("/orders/:id/fulfill", h.Admin.FulfillOrder)
		admin.POST("/orders/:id/decline", h.Admin.DeclineOrder)
		admin.POST("/orders/:id/sync-status", h.Admin.SyncOrderStatus)
		admin.POST("/services/sync", h.Admin.SyncServices)
		admin.GET("/provider/balance", h.Admin.ProviderBalance)
	}
}
