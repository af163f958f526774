package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)

	bankDetails := e.Group("/v1/users/me/bank-details")
	bankDetails.Use(authMiddleware.Authenticate)
	bankDetails.Use(roleMiddleware.SellerOnly)
	bankDetails.PUT("", userHandler.UpdateBankDetail)

	admin := e.Group("/v1/admin/users")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)
	admin.GET("", userHandler.ListUsers)
	admin.PATCH("/:id/status", userHandler.UpdateUserStatus)
}
