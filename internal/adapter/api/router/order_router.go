package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, orderHandler *handler.OrderHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	// Buyer order flow
	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.ListBuyerOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/cancel", orderHandler.CancelOrder)
	orders.POST("/:id/confirm-delivery", orderHandler.ConfirmDelivery)

	// Seller fulfillment
	sellerOrders := e.Group("/v1/seller/orders")
	sellerOrders.Use(authMiddleware.Authenticate)
	sellerOrders.Use(roleMiddleware.SellerOnly)
	sellerOrders.GET("", orderHandler.ListSellerOrders)
	sellerOrders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
}
