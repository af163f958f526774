package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type firestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) repository.WalletRepository {
	return &firestoreWalletRepository{
		client: client,
	}
}

func (r *firestoreWalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	_, err := r.client.Collection("wallets").Doc(wallet.ID).Set(ctx, wallet)
	if err != nil {
		return errors.Internal("Failed to create wallet", err)
	}
	return nil
}

func (r *firestoreWalletRepository) GetByID(ctx context.Context, walletID string) (*entity.Wallet, error) {
	doc, err := r.client.Collection("wallets").Doc(walletID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Wallet", err)
		}
		return nil, errors.Internal("Failed to get wallet", err)
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, errors.Internal("Failed to parse wallet data", err)
	}

	return &wallet, nil
}

func (r *firestoreWalletRepository) GetBySellerID(ctx context.Context, sellerID string) (*entity.Wallet, error) {
	query := r.client.Collection("wallets").Where("sellerId", "==", sellerID).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Wallet", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get wallet", err)
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, errors.Internal("Failed to parse wallet data", err)
	}

	return &wallet, nil
}

// Mutate re-reads the wallet inside a Firestore transaction, applies fn and
// writes the result. A domain error from fn aborts the transaction untouched.
func (r *firestoreWalletRepository) Mutate(ctx context.Context, walletID string, fn func(*entity.Wallet) error) (*entity.Wallet, error) {
	var updated entity.Wallet

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("wallets").Doc(walletID)
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var wallet entity.Wallet
		if err := doc.DataTo(&wallet); err != nil {
			return err
		}

		if err := fn(&wallet); err != nil {
			return err
		}

		updated = wallet
		return tx.Set(docRef, wallet)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreWalletRepository) Count(ctx context.Context) (int, error) {
	iter := r.client.Collection("wallets").Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Error counting wallets: %v", err)
			return 0, nil
		}
		count++
	}

	return count, nil
}

func (r *firestoreWalletRepository) Totals(ctx context.Context) (balance, pending, adminFees float64, err error) {
	iter := r.client.Collection("wallets").Documents(ctx)
	defer iter.Stop()

	for {
		doc, iterErr := iter.Next()
		if iterErr == iterator.Done {
			break
		}
		if iterErr != nil {
			log.Printf("Error calculating wallet totals: %v", iterErr)
			return 0, 0, 0, nil
		}

		var wallet entity.Wallet
		if dataErr := doc.DataTo(&wallet); dataErr != nil {
			log.Printf("Error converting wallet document: %v", dataErr)
			continue
		}

		balance += wallet.Balance
		pending += wallet.PendingBalance
		adminFees += wallet.TotalAdminFees
	}

	return balance, pending, adminFees, nil
}

type firestoreWalletEntryRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletEntryRepository(client *firestore.Client) repository.WalletEntryRepository {
	return &firestoreWalletEntryRepository{
		client: client,
	}
}

func (r *firestoreWalletEntryRepository) Create(ctx context.Context, entry *entity.WalletEntry) error {
	_, err := r.client.Collection("wallet_entries").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to create wallet entry", err)
	}
	return nil
}

func (r *firestoreWalletEntryRepository) ListByWalletID(ctx context.Context, walletID string, pagination *utils.Pagination) ([]entity.WalletEntry, error) {
	query := r.client.Collection("wallet_entries").
		Where("walletId", "==", walletID).
		OrderBy("createdAt", firestore.Desc)

	if pagination.Page > 1 {
		query = query.Offset(pagination.Offset())
	}
	query = query.Limit(pagination.Limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []entity.WalletEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list wallet entries", err)
		}

		var entry entity.WalletEntry
		if err := doc.DataTo(&entry); err != nil {
			log.Printf("Error converting document to wallet entry: %v", err)
			continue
		}

		entries = append(entries, entry)
	}

	if entries == nil {
		entries = []entity.WalletEntry{}
	}

	return entries, nil
}
