package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	var req usecase.StartChatInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	buyerID, err := getUserID(c)
	if err != nil {
		return err
	}

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), buyerID, req)
	if err != nil {
		log.Printf("Error starting chat: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), userID, pagination)
	if err != nil {
		log.Printf("Error listing chats: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), userID, c.Param("id"), pagination)
	if err != nil {
		log.Printf("Error getting messages: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		log.Printf("Error sending message: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	if err := h.chatUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		log.Printf("Error marking chat read: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, nil)
}
