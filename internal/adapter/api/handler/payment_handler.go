package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"mercato/internal/domain/service"
	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
	gateway        service.PaymentGatewayService
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase, gateway service.PaymentGatewayService) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		gateway:        gateway,
	}
}

func (h *PaymentHandler) InitializePayment(c echo.Context) error {
	var req usecase.InitializePaymentInput
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

	result, err := h.paymentUseCase.InitializePayment(c.Request().Context(), buyerID, req)
	if err != nil {
		log.Printf("Error initializing payment: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return err
	}

	transaction, err := h.paymentUseCase.VerifyPayment(c.Request().Context(), buyerID, c.Param("reference"))
	if err != nil {
		log.Printf("Error verifying payment: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandleWebhook receives gateway events. The raw body is needed twice: once
// for the HMAC signature check and once for parsing, so it is read up front.
// The gateway retries non-2xx responses, so processing errors after a valid
// signature still return 200 and rely on the idempotent settle.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		return c.NoContent(http.StatusBadRequest)
	}

	signature := c.Request().Header.Get("x-paystack-signature")
	if !h.gateway.VerifyWebhookSignature(body, signature) {
		log.Printf("Webhook signature verification failed")
		return c.NoContent(http.StatusUnauthorized)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error parsing webhook body: %v", err)
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.paymentUseCase.HandleWebhook(c.Request().Context(), event.Event, event.Data.Reference); err != nil {
		log.Printf("Error handling webhook %s for %s: %v", event.Event, event.Data.Reference, err)
	}

	return c.NoContent(http.StatusOK)
}

// Admin endpoints

func (h *PaymentHandler) ListTransactions(c echo.Context) error {
	filter := map[string]interface{}{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	pagination := utils.PaginationFromContext(c)

	transactions, total, err := h.paymentUseCase.ListTransactions(c.Request().Context(), filter, pagination)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, transactions, total, pagination.Page, pagination.Limit)
}
