package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupPayoutRouter(e *echo.Echo, payoutHandler *handler.PayoutHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	payouts := e.Group("/v1/payouts")
	payouts.Use(authMiddleware.Authenticate)
	payouts.Use(roleMiddleware.SellerOnly)
	payouts.POST("", payoutHandler.RequestPayout)
	payouts.GET("", payoutHandler.ListMyPayouts)
	payouts.GET("/:id", payoutHandler.GetPayout)
	payouts.POST("/:id/cancel", payoutHandler.CancelPayout)

	admin := e.Group("/v1/admin/payouts")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)
	admin.GET("", payoutHandler.ListPayouts)
	admin.POST("/:id/process", payoutHandler.ProcessPayout)
}
