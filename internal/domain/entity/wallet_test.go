package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalletCreditPending(t *testing.T) {
	w := &Wallet{}

	err := w.CreditPending(95, 5)
	assert.NoError(t, err)
	assert.Equal(t, 95.0, w.PendingBalance)
	assert.Equal(t, 95.0, w.TotalEarnings)
	assert.Equal(t, 5.0, w.TotalAdminFees)
	assert.Equal(t, 0.0, w.Balance)
}

func TestWalletReleasePending(t *testing.T) {
	w := &Wallet{PendingBalance: 100}

	err := w.ReleasePending(60)
	assert.NoError(t, err)
	assert.Equal(t, 40.0, w.PendingBalance)
	assert.Equal(t, 60.0, w.Balance)
}

func TestWalletReleasePendingInsufficient(t *testing.T) {
	w := &Wallet{PendingBalance: 10}

	err := w.ReleasePending(60)
	assert.ErrorIs(t, err, ErrInsufficientPending)
	assert.Equal(t, 10.0, w.PendingBalance)
	assert.Equal(t, 0.0, w.Balance)
}

func TestWalletDebit(t *testing.T) {
	w := &Wallet{Balance: 100}

	err := w.Debit(80)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, w.Balance)
	assert.Equal(t, 80.0, w.TotalWithdrawn)
}

func TestWalletDebitInsufficient(t *testing.T) {
	w := &Wallet{Balance: 50}

	err := w.Debit(80)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 50.0, w.Balance)
}

func TestWalletDebitRejectsNonPositive(t *testing.T) {
	w := &Wallet{Balance: 50}

	assert.Error(t, w.Debit(0))
	assert.Error(t, w.Debit(-10))
	assert.Equal(t, 50.0, w.Balance)
}

func TestWalletRefundRestoresDebit(t *testing.T) {
	w := &Wallet{Balance: 100}

	assert.NoError(t, w.Debit(80))
	assert.NoError(t, w.Refund(80))
	assert.Equal(t, 100.0, w.Balance)
	assert.Equal(t, 0.0, w.TotalWithdrawn)
}
