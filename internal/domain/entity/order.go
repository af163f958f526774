package entity

import (
	"time"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// OrderItem snapshots the product price at checkout time so later price
// changes never affect the order total.
type OrderItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	Title     string  `json:"title" firestore:"title"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Price     float64 `json:"price" firestore:"price"`
}

type Order struct {
	ID          string      `json:"id" firestore:"id"`
	BuyerID     string      `json:"buyer_id" firestore:"buyerId"`
	SellerID    string      `json:"seller_id" firestore:"sellerId"`
	Items       []OrderItem `json:"items" firestore:"items"`
	TotalAmount float64     `json:"total_amount" firestore:"totalAmount"`

	Status        string `json:"status" firestore:"status"`
	PaymentStatus string `json:"payment_status" firestore:"paymentStatus"`

	// Gateway reference of the payment attempt currently tied to this order.
	PaymentReference string `json:"payment_reference,omitempty" firestore:"paymentReference,omitempty"`

	FundsReleased   bool       `json:"funds_released" firestore:"fundsReleased"`
	FundsReleasedAt *time.Time `json:"funds_released_at,omitempty" firestore:"fundsReleasedAt,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty" firestore:"deliveredAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// ItemsTotal recomputes the sum of the snapshotted line items.
func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
