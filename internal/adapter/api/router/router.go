package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

// Handlers bundles everything the routers mount.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Payment   *handler.PaymentHandler
	Wallet    *handler.WalletHandler
	Payout    *handler.PayoutHandler
	Chat      *handler.ChatHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupUserRouter(e, h.User, authMiddleware, roleMiddleware)
	SetupProductRouter(e, h.Product, authMiddleware, roleMiddleware)
	SetupOrderRouter(e, h.Order, authMiddleware, roleMiddleware)
	SetupPaymentRouter(e, h.Payment, authMiddleware, roleMiddleware)
	SetupWalletRouter(e, h.Wallet, authMiddleware, roleMiddleware)
	SetupPayoutRouter(e, h.Payout, authMiddleware, roleMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
}
