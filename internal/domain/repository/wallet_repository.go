package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *entity.Wallet) error
	GetByID(ctx context.Context, walletID string) (*entity.Wallet, error)
	GetBySellerID(ctx context.Context, sellerID string) (*entity.Wallet, error)

	// Mutate applies fn to the wallet inside a datastore transaction and
	// persists the result atomically, so concurrent balance mutations
	// serialize instead of last-writer-wins.
	Mutate(ctx context.Context, walletID string, fn func(*entity.Wallet) error) (*entity.Wallet, error)

	Count(ctx context.Context) (int, error)
	Totals(ctx context.Context) (balance, pending, adminFees float64, err error)
}

type WalletEntryRepository interface {
	Create(ctx context.Context, entry *entity.WalletEntry) error
	ListByWalletID(ctx context.Context, walletID string, pagination *utils.Pagination) ([]entity.WalletEntry, error)
}
