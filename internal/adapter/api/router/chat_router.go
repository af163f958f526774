package router

import (
	"github.com/labstack/echo/v4"

	"mercato/internal/adapter/api/handler"
	"mercato/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)
	chats.POST("", chatHandler.StartChat)
	chats.GET("", chatHandler.ListChats)
	chats.GET("/:id/messages", chatHandler.GetMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkRead)
}
