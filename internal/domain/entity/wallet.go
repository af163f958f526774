package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientPending = errors.New("insufficient pending balance")
)

const (
	WalletEntryEscrowCredit  = "escrow_credit"
	WalletEntryEscrowRelease = "escrow_release"
	WalletEntryPayoutDebit   = "payout_debit"
	WalletEntryPayoutRefund  = "payout_refund"
)

// Wallet is the per-seller balance. Balance is withdrawable; PendingBalance
// holds escrowed earnings that have not been delivery-confirmed yet.
type Wallet struct {
	ID             string  `json:"id" firestore:"id"`
	SellerID       string  `json:"seller_id" firestore:"sellerId"`
	Balance        float64 `json:"balance" firestore:"balance"`
	PendingBalance float64 `json:"pending_balance" firestore:"pendingBalance"`
	TotalEarnings  float64 `json:"total_earnings" firestore:"totalEarnings"`
	TotalWithdrawn float64 `json:"total_withdrawn" firestore:"totalWithdrawn"`
	TotalAdminFees float64 `json:"total_admin_fees" firestore:"totalAdminFees"`
	Currency       string  `json:"currency" firestore:"currency"`
	Status         string  `json:"status" firestore:"status"` // active, suspended

	LastEntryAt time.Time `json:"last_entry_at" firestore:"lastEntryAt"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CreditPending records a settled payment: seller share goes into escrow,
// the platform fee is tracked for reporting.
func (w *Wallet) CreditPending(sellerAmount, adminFee float64) error {
	if sellerAmount < 0 {
		return fmt.Errorf("credit amount must not be negative")
	}
	w.PendingBalance += sellerAmount
	w.TotalEarnings += sellerAmount
	w.TotalAdminFees += adminFee
	return nil
}

// ReleasePending moves escrowed funds into the withdrawable balance.
func (w *Wallet) ReleasePending(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("release amount must not be negative")
	}
	if w.PendingBalance < amount {
		return ErrInsufficientPending
	}
	w.PendingBalance -= amount
	w.Balance += amount
	return nil
}

// Debit reserves funds for a payout at request time, so two overlapping
// payout requests cannot reference the same balance.
func (w *Wallet) Debit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be greater than 0")
	}
	if w.Balance < amount {
		return ErrInsufficientBalance
	}
	w.Balance -= amount
	w.TotalWithdrawn += amount
	return nil
}

// Refund restores a reserved payout amount after a rejection or cancellation.
func (w *Wallet) Refund(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("refund amount must not be negative")
	}
	w.Balance += amount
	w.TotalWithdrawn -= amount
	return nil
}

// WalletEntry is one ledger line per wallet mutation.
type WalletEntry struct {
	ID              string    `json:"id" firestore:"id"`
	WalletID        string    `json:"wallet_id" firestore:"walletId"`
	SellerID        string    `json:"seller_id" firestore:"sellerId"`
	Type            string    `json:"type" firestore:"type"`
	Amount          float64   `json:"amount" firestore:"amount"`
	PreviousBalance float64   `json:"previous_balance" firestore:"previousBalance"`
	NewBalance      float64   `json:"new_balance" firestore:"newBalance"`
	PreviousPending float64   `json:"previous_pending" firestore:"previousPending"`
	NewPending      float64   `json:"new_pending" firestore:"newPending"`
	Reference       string    `json:"reference,omitempty" firestore:"reference,omitempty"`
	Description     string    `json:"description" firestore:"description"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
