package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewPaystackPaymentService("sk_test_secret", "")
	body := []byte(`{"event":"charge.success","data":{"reference":"TXN-1"}}`)

	assert.True(t, svc.VerifyWebhookSignature(body, signBody("sk_test_secret", body)))
	assert.False(t, svc.VerifyWebhookSignature(body, signBody("wrong_secret", body)))
	assert.False(t, svc.VerifyWebhookSignature(body, ""))
	assert.False(t, svc.VerifyWebhookSignature([]byte("tampered"), signBody("sk_test_secret", body)))
}

func TestMapGatewayStatus(t *testing.T) {
	assert.Equal(t, GatewayStatusSuccess, mapGatewayStatus("success"))
	assert.Equal(t, GatewayStatusFailed, mapGatewayStatus("failed"))
	assert.Equal(t, GatewayStatusFailed, mapGatewayStatus("abandoned"))
	assert.Equal(t, GatewayStatusFailed, mapGatewayStatus("reversed"))
	assert.Equal(t, GatewayStatusPending, mapGatewayStatus("ongoing"))
	assert.Equal(t, GatewayStatusPending, mapGatewayStatus(""))
}

func TestSubunitConversion(t *testing.T) {
	assert.Equal(t, int64(10000), toSubunits(100))
	assert.Equal(t, int64(9999), toSubunits(99.99))
	assert.Equal(t, int64(1), toSubunits(0.01))
	assert.Equal(t, 99.99, fromSubunits(9999))
	assert.Equal(t, 0.5, fromSubunits(50))
}
