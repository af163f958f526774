package service

import (
	"context"
	"time"
)

// PaymentGatewayService wraps the hosted-payment provider: initialize returns
// a redirect URL for the buyer, verify pulls the authoritative charge status.
type PaymentGatewayService interface {
	InitializePayment(ctx context.Context, req InitializePaymentRequest) (*InitializePaymentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

type InitializePaymentRequest struct {
	Email     string
	Amount    float64
	Currency  string
	Reference string
	Metadata  map[string]interface{}
}

type InitializePaymentResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// PaymentVerification is the gateway's view of a charge. Status is mapped to
// success, failed or pending before it leaves this package.
type PaymentVerification struct {
	Reference       string
	Status          string
	Amount          float64
	Currency        string
	Channel         string
	GatewayResponse string
	PaidAt          *time.Time
}

const (
	GatewayStatusSuccess = "success"
	GatewayStatusFailed  = "failed"
	GatewayStatusPending = "pending"
)
