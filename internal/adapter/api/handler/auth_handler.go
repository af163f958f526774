package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req)
	if err != nil {
		log.Printf("Error logging in: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req usecase.ChangePasswordInput
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

	if err := h.authUseCase.ChangePassword(c.Request().Context(), userID, req); err != nil {
		log.Printf("Error changing password: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, nil)
}
