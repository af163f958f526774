package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type PayoutHandler struct {
	payoutUseCase *usecase.PayoutUseCase
}

func NewPayoutHandler(payoutUseCase *usecase.PayoutUseCase) *PayoutHandler {
	return &PayoutHandler{
		payoutUseCase: payoutUseCase,
	}
}

func (h *PayoutHandler) RequestPayout(c echo.Context) error {
	var req usecase.RequestPayoutInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	payout, err := h.payoutUseCase.RequestPayout(c.Request().Context(), sellerID, req)
	if err != nil {
		log.Printf("Error requesting payout: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, payout)
}

func (h *PayoutHandler) GetPayout(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	payout, err := h.payoutUseCase.GetPayout(c.Request().Context(), sellerID, c.Param("id"))
	if err != nil {
		log.Printf("Error getting payout: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, payout)
}

func (h *PayoutHandler) ListMyPayouts(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	payouts, total, err := h.payoutUseCase.ListSellerPayouts(c.Request().Context(), sellerID, pagination)
	if err != nil {
		log.Printf("Error listing payouts: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, payouts, total, pagination.Page, pagination.Limit)
}

func (h *PayoutHandler) CancelPayout(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	payout, err := h.payoutUseCase.CancelPayout(c.Request().Context(), sellerID, c.Param("id"))
	if err != nil {
		log.Printf("Error cancelling payout: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, payout)
}

// Admin endpoints

func (h *PayoutHandler) ListPayouts(c echo.Context) error {
	pagination := utils.PaginationFromContext(c)

	payouts, total, err := h.payoutUseCase.ListPayoutsByStatus(c.Request().Context(), c.QueryParam("status"), pagination)
	if err != nil {
		log.Printf("Error listing payouts: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, payouts, total, pagination.Page, pagination.Limit)
}

func (h *PayoutHandler) ProcessPayout(c echo.Context) error {
	var req usecase.ProcessPayoutInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	adminID, err := getUserID(c)
	if err != nil {
		return err
	}

	payout, err := h.payoutUseCase.ProcessPayout(c.Request().Context(), adminID, c.Param("id"), req)
	if err != nil {
		log.Printf("Error processing payout: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, payout)
}
