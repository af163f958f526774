package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var req usecase.CheckoutInput
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

	order, err := h.orderUseCase.Checkout(c.Request().Context(), buyerID, req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		log.Printf("Error getting order: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListBuyerOrders(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	orders, total, err := h.orderUseCase.ListBuyerOrders(c.Request().Context(), buyerID, pagination)
	if err != nil {
		log.Printf("Error listing buyer orders: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.Limit)
}

func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	orders, total, err := h.orderUseCase.ListSellerOrders(c.Request().Context(), sellerID, pagination)
	if err != nil {
		log.Printf("Error listing seller orders: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.Limit)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req usecase.UpdateOrderStatusInput
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

	order, err := h.orderUseCase.UpdateOrderStatus(c.Request().Context(), sellerID, c.Param("id"), req)
	if err != nil {
		log.Printf("Error updating order status: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return err
	}

	order, err := h.orderUseCase.CancelOrder(c.Request().Context(), buyerID, c.Param("id"))
	if err != nil {
		log.Printf("Error cancelling order: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return err
	}

	order, err := h.orderUseCase.ConfirmDelivery(c.Request().Context(), buyerID, c.Param("id"))
	if err != nil {
		log.Printf("Error confirming delivery: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
