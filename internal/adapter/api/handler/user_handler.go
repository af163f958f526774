package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req usecase.UpdateProfileInput
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

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateBankDetail(c echo.Context) error {
	var req usecase.UpdateBankDetailInput
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

	user, err := h.userUseCase.UpdateBankDetail(c.Request().Context(), userID, req)
	if err != nil {
		log.Printf("Error updating bank details: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// Admin endpoints

func (h *UserHandler) ListUsers(c echo.Context) error {
	filter := usecase.UserFilter{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
	}
	pagination := utils.PaginationFromContext(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), filter, pagination)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.Limit)
}

func (h *UserHandler) UpdateUserStatus(c echo.Context) error {
	var req usecase.UpdateUserStatusInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateUserStatus(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		log.Printf("Error updating user status: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
