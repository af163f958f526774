package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authenticated := auth.Group("")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("/change-password", authHandler.ChangePassword)
}
