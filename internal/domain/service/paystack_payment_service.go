package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// PaystackPaymentService talks to the Paystack HTTP API. All calls go through
// a circuit breaker so a degraded gateway fails fast instead of holding every
// request open.
type PaystackPaymentService struct {
	secretKey string
	baseURL   string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[[]byte]
}

func NewPaystackPaymentService(secretKey, baseURL string) *PaystackPaymentService {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "paystack",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &PaystackPaymentService{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		breaker:   breaker,
	}
}

type paystackInitializeRequest struct {
	Email     string                 `json:"email"`
	Amount    int64                  `json:"amount"` // subunits (kobo)
	Currency  string                 `json:"currency,omitempty"`
	Reference string                 `json:"reference"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Channel         string `json:"channel"`
	GatewayResponse string `json:"gateway_response"`
	PaidAt          string `json:"paid_at"`
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *PaystackPaymentService) InitializePayment(ctx context.Context, req InitializePaymentRequest) (*InitializePaymentResponse, error) {
	payload := paystackInitializeRequest{
		Email:     req.Email,
		Amount:    toSubunits(req.Amount),
		Currency:  req.Currency,
		Reference: req.Reference,
		Metadata:  req.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	respBody, err := s.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	var data paystackInitializeData
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse initialize response: %w", err)
	}

	log.Printf("Payment initialized with gateway: reference=%s", data.Reference)

	return &InitializePaymentResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (s *PaystackPaymentService) VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error) {
	respBody, err := s.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var data paystackVerifyData
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse verify response: %w", err)
	}

	verification := &PaymentVerification{
		Reference:       data.Reference,
		Status:          mapGatewayStatus(data.Status),
		Amount:          fromSubunits(data.Amount),
		Currency:        data.Currency,
		Channel:         data.Channel,
		GatewayResponse: data.GatewayResponse,
	}

	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			verification.PaidAt = &paidAt
		}
	}

	log.Printf("Payment verified with gateway: reference=%s status=%s", reference, verification.Status)
	return verification, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 signature the gateway sends
// in the x-paystack-signature header against the raw event body.
func (s *PaystackPaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *PaystackPaymentService) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	return s.breaker.Execute(func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		var envelope paystackEnvelope
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
			log.Printf("Gateway API error: status=%d message=%s", resp.StatusCode, envelope.Message)
			return nil, fmt.Errorf("gateway API error: %s", envelope.Message)
		}

		return envelope.Data, nil
	})
}

func mapGatewayStatus(status string) string {
	switch status {
	case "success":
		return GatewayStatusSuccess
	case "failed", "abandoned", "reversed":
		return GatewayStatusFailed
	default:
		return GatewayStatusPending
	}
}

// The gateway deals in subunits (kobo); amounts are decimal currency units
// everywhere else.
func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromSubunits(amount int64) float64 {
	return float64(amount) / 100
}
