package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

func TestGetOrCreateWalletCreatesOnFirstUse(t *testing.T) {
	wallets := newMemWalletRepo()
	entries := newMemWalletEntryRepo()
	uc := NewWalletUseCase(wallets, entries, "NGN")
	ctx := context.Background()

	wallet, err := uc.GetOrCreateWallet(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, "seller-1", wallet.SellerID)
	assert.Equal(t, "NGN", wallet.Currency)
	assert.Equal(t, 0.0, wallet.Balance)

	// Second call returns the same wallet.
	again, err := uc.GetOrCreateWallet(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, again.ID)

	count, err := wallets.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreditEscrowWritesLedgerEntry(t *testing.T) {
	wallets := newMemWalletRepo()
	entries := newMemWalletEntryRepo()
	uc := NewWalletUseCase(wallets, entries, "NGN")
	ctx := context.Background()

	wallet, err := uc.CreditEscrow(ctx, "seller-1", 190, 10, "TXN-abc")
	require.NoError(t, err)
	assert.Equal(t, 190.0, wallet.PendingBalance)
	assert.Equal(t, 190.0, wallet.TotalEarnings)
	assert.Equal(t, 10.0, wallet.TotalAdminFees)

	recorded, err := entries.ListByWalletID(ctx, wallet.ID, &utils.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, entity.WalletEntryEscrowCredit, recorded[0].Type)
	assert.Equal(t, 0.0, recorded[0].PreviousPending)
	assert.Equal(t, 190.0, recorded[0].NewPending)
	assert.Equal(t, "TXN-abc", recorded[0].Reference)
}

func TestReleaseEscrowMovesFunds(t *testing.T) {
	wallets := newMemWalletRepo()
	entries := newMemWalletEntryRepo()
	uc := NewWalletUseCase(wallets, entries, "NGN")
	ctx := context.Background()

	_, err := uc.CreditEscrow(ctx, "seller-1", 190, 10, "TXN-abc")
	require.NoError(t, err)

	wallet, err := uc.ReleaseEscrow(ctx, "seller-1", 190, "TXN-abc")
	require.NoError(t, err)
	assert.Equal(t, 190.0, wallet.Balance)
	assert.Equal(t, 0.0, wallet.PendingBalance)

	// Releasing more than is pending fails cleanly.
	_, err = uc.ReleaseEscrow(ctx, "seller-1", 1, "TXN-abc")
	require.Error(t, err)
}

func TestStatisticsAggregatesWallets(t *testing.T) {
	wallets := newMemWalletRepo()
	entries := newMemWalletEntryRepo()
	uc := NewWalletUseCase(wallets, entries, "NGN")
	ctx := context.Background()

	_, err := uc.CreditEscrow(ctx, "seller-1", 100, 5, "TXN-1")
	require.NoError(t, err)
	_, err = uc.CreditEscrow(ctx, "seller-2", 200, 10, "TXN-2")
	require.NoError(t, err)
	_, err = uc.ReleaseEscrow(ctx, "seller-1", 100, "TXN-1")
	require.NoError(t, err)

	stats, err := uc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalWallets)
	assert.Equal(t, 100.0, stats.TotalBalance)
	assert.Equal(t, 200.0, stats.TotalPending)
	assert.Equal(t, 15.0, stats.TotalAdminFee)
}
