package entity

import (
	"time"
)

const (
	TransactionStatusPending  = "pending"
	TransactionStatusSuccess  = "success"
	TransactionStatusFailed   = "failed"
	TransactionStatusRefunded = "refunded"
)

// Transaction is one payment attempt against an order. The split amounts are
// persisted verbatim at creation so reconciliation never re-derives them from
// a possibly changed fee percentage.
type Transaction struct {
	ID        string `json:"id" firestore:"id"`
	Reference string `json:"reference" firestore:"reference"`
	OrderID   string `json:"order_id" firestore:"orderId"`
	BuyerID   string `json:"buyer_id" firestore:"buyerId"`
	SellerID  string `json:"seller_id" firestore:"sellerId"`

	Amount       float64 `json:"amount" firestore:"amount"`
	AdminFee     float64 `json:"admin_fee" firestore:"adminFee"`
	SellerAmount float64 `json:"seller_amount" firestore:"sellerAmount"`
	Currency     string  `json:"currency" firestore:"currency"`

	Status string `json:"status" firestore:"status"` // pending, success, failed, refunded

	// Raw gateway fields captured at initialize/verify time.
	AuthorizationURL string `json:"authorization_url,omitempty" firestore:"authorizationUrl,omitempty"`
	AccessCode       string `json:"access_code,omitempty" firestore:"accessCode,omitempty"`
	Channel          string `json:"channel,omitempty" firestore:"channel,omitempty"`
	GatewayResponse  string `json:"gateway_response,omitempty" firestore:"gatewayResponse,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
}
