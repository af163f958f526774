package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, paymentHandler *handler.PaymentHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	payments := e.Group("/v1/payments")

	// The webhook authenticates through its HMAC signature, not a bearer token.
	payments.POST("/webhook", paymentHandler.HandleWebhook)

	authenticated := payments.Group("")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("/initialize", paymentHandler.InitializePayment)
	authenticated.GET("/verify/:reference", paymentHandler.VerifyPayment)

	admin := e.Group("/v1/admin/transactions")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)
	admin.GET("", paymentHandler.ListTransactions)
}
