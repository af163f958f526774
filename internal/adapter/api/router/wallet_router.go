package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupWalletRouter(e *echo.Echo, walletHandler *handler.WalletHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	wallet := e.Group("/v1/wallet")
	wallet.Use(authMiddleware.Authenticate)
	wallet.Use(roleMiddleware.SellerOnly)
	wallet.GET("", walletHandler.GetWallet)
	wallet.GET("/entries", walletHandler.GetWalletEntries)

	admin := e.Group("/v1/admin/wallet")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)
	admin.GET("/statistics", walletHandler.GetWalletStatistics)
}
