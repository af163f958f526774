package usecase

import (
	"context"
	stderrors "errors"
	"log"
	"time"

	"github.com/google/uuid"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

// WalletUseCase owns every wallet mutation. Balance arithmetic happens inside
// WalletRepository.Mutate so concurrent settlements, releases and payout
// reservations against the same wallet serialize on the datastore transaction.
type WalletUseCase struct {
	walletRepo repository.WalletRepository
	entryRepo  repository.WalletEntryRepository
	currency   string
}

func NewWalletUseCase(
	walletRepo repository.WalletRepository,
	entryRepo repository.WalletEntryRepository,
	currency string,
) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		currency:   currency,
	}
}

// GetOrCreateWallet returns the seller's wallet, creating an empty one on
// first use.
func (uc *WalletUseCase) GetOrCreateWallet(ctx context.Context, sellerID string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetBySellerID(ctx, sellerID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	now := time.Now()
	wallet = &entity.Wallet{
		ID:        uuid.New().String(),
		SellerID:  sellerID,
		Currency:  uc.currency,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	log.Printf("Created wallet %s for seller %s", wallet.ID, sellerID)
	return wallet, nil
}

func (uc *WalletUseCase) GetWalletBySellerID(ctx context.Context, sellerID string) (*entity.Wallet, error) {
	return uc.GetOrCreateWallet(ctx, sellerID)
}

func (uc *WalletUseCase) GetWalletEntries(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]entity.WalletEntry, error) {
	wallet, err := uc.GetOrCreateWallet(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return uc.entryRepo.ListByWalletID(ctx, wallet.ID, pagination)
}

// CreditEscrow puts a settled payment's seller share into the wallet's pending
// balance.
func (uc *WalletUseCase) CreditEscrow(ctx context.Context, sellerID string, sellerAmount, adminFee float64, reference string) (*entity.Wallet, error) {
	wallet, err := uc.GetOrCreateWallet(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return uc.mutateWithEntry(ctx, wallet.ID, entity.WalletEntryEscrowCredit, sellerAmount, reference,
		"Escrow credit from settled payment",
		func(w *entity.Wallet) error {
			return w.CreditPending(sellerAmount, adminFee)
		})
}

// ReleaseEscrow moves escrowed funds into the withdrawable balance after
// delivery is confirmed.
func (uc *WalletUseCase) ReleaseEscrow(ctx context.Context, sellerID string, amount float64, reference string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.mutateWithEntry(ctx, wallet.ID, entity.WalletEntryEscrowRelease, amount, reference,
		"Escrow release after delivery confirmation",
		func(w *entity.Wallet) error {
			return w.ReleasePending(amount)
		})
	if stderrors.Is(err, entity.ErrInsufficientPending) {
		return nil, errors.BadRequest("Insufficient pending balance", err)
	}
	return updated, err
}

// ReservePayout debits the withdrawable balance the moment a payout is
// requested, so the requested amount cannot be spent twice.
func (uc *WalletUseCase) ReservePayout(ctx context.Context, sellerID string, amount float64, reference string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.mutateWithEntry(ctx, wallet.ID, entity.WalletEntryPayoutDebit, amount, reference,
		"Payout reservation",
		func(w *entity.Wallet) error {
			return w.Debit(amount)
		})
	if stderrors.Is(err, entity.ErrInsufficientBalance) {
		return nil, errors.BadRequest("Insufficient balance for payout", err)
	}
	return updated, err
}

// RefundPayout restores a reserved amount after a payout is rejected or
// cancelled.
func (uc *WalletUseCase) RefundPayout(ctx context.Context, sellerID string, amount float64, reference string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return uc.mutateWithEntry(ctx, wallet.ID, entity.WalletEntryPayoutRefund, amount, reference,
		"Payout refund",
		func(w *entity.Wallet) error {
			return w.Refund(amount)
		})
}

type WalletStatistics struct {
	TotalWallets  int     `json:"total_wallets"`
	TotalBalance  float64 `json:"total_balance"`
	TotalPending  float64 `json:"total_pending"`
	TotalAdminFee float64 `json:"total_admin_fee"`
}

func (uc *WalletUseCase) GetStatistics(ctx context.Context) (*WalletStatistics, error) {
	count, err := uc.walletRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	balance, pending, adminFees, err := uc.walletRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &WalletStatistics{
		TotalWallets:  count,
		TotalBalance:  balance,
		TotalPending:  pending,
		TotalAdminFee: adminFees,
	}, nil
}

// mutateWithEntry applies fn transactionally and records one ledger entry
// capturing the balances before and after.
func (uc *WalletUseCase) mutateWithEntry(ctx context.Context, walletID, entryType string, amount float64, reference, description string, fn func(*entity.Wallet) error) (*entity.Wallet, error) {
	var prevBalance, prevPending float64

	updated, err := uc.walletRepo.Mutate(ctx, walletID, func(w *entity.Wallet) error {
		prevBalance = w.Balance
		prevPending = w.PendingBalance
		if err := fn(w); err != nil {
			return err
		}
		w.LastEntryAt = time.Now()
		w.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := &entity.WalletEntry{
		ID:              uuid.New().String(),
		WalletID:        updated.ID,
		SellerID:        updated.SellerID,
		Type:            entryType,
		Amount:          amount,
		PreviousBalance: prevBalance,
		NewBalance:      updated.Balance,
		PreviousPending: prevPending,
		NewPending:      updated.PendingBalance,
		Reference:       reference,
		Description:     description,
		CreatedAt:       time.Now(),
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		// The balance change is already committed; a missing ledger line is
		// logged rather than failing the mutation.
		log.Printf("Failed to record wallet entry for wallet %s: %v", updated.ID, err)
	}

	log.Printf("Wallet %s %s: amount=%.2f balance=%.2f pending=%.2f", updated.ID, entryType, amount, updated.Balance, updated.PendingBalance)
	return updated, nil
}
