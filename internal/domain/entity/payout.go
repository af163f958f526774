package entity

import (
	"time"
)

const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
	PayoutStatusCancelled  = "cancelled"
)

// Payout is a seller withdrawal of confirmed wallet balance. The bank detail
// is snapshotted at request time so later profile edits do not change where
// an in-flight payout is sent.
type Payout struct {
	ID        string     `json:"id" firestore:"id"`
	SellerID  string     `json:"seller_id" firestore:"sellerId"`
	WalletID  string     `json:"wallet_id" firestore:"walletId"`
	Amount    float64    `json:"amount" firestore:"amount"`
	Reference string     `json:"reference" firestore:"reference"`
	Status    string     `json:"status" firestore:"status"`
	Bank      BankDetail `json:"bank" firestore:"bank"`

	AdminNotes  string     `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	ProcessedBy string     `json:"processed_by,omitempty" firestore:"processedBy,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" firestore:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}
