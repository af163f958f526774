package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create transaction", err)
	}
	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	return r.getByField(ctx, "reference", reference)
}

// GetByOrderID returns the most recent payment attempt for an order.
func (r *firestoreTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error) {
	query := r.client.Collection("transactions").
		Where("orderId", "==", orderID).
		OrderBy("createdAt", firestore.Desc).
		Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Transaction", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) getByField(ctx context.Context, field, value string) (*entity.Transaction, error) {
	query := r.client.Collection("transactions").Where(field, "==", value).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Transaction", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()
	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to update transaction", err)
	}
	return nil
}

func (r *firestoreTransactionRepository) List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Transaction, int64, error) {
	query := r.client.Collection("transactions").Query
	for field, value := range filter {
		query = query.Where(field, "==", value)
	}

	total, err := countDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if pagination.Page > 1 {
		query = query.Offset(pagination.Offset())
	}
	query = query.Limit(pagination.Limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var transactions []*entity.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list transactions", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			log.Printf("Error converting document to transaction: %v", err)
			continue
		}

		transactions = append(transactions, &transaction)
	}

	return transactions, total, nil
}
