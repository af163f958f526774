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

type firestorePayoutRepository struct {
	client *firestore.Client
}

func NewFirestorePayoutRepository(client *firestore.Client) repository.PayoutRepository {
	return &firestorePayoutRepository{
		client: client,
	}
}

func (r *firestorePayoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	_, err := r.client.Collection("payouts").Doc(payout.ID).Set(ctx, payout)
	if err != nil {
		return errors.Internal("Failed to create payout", err)
	}
	return nil
}

func (r *firestorePayoutRepository) GetByID(ctx context.Context, id string) (*entity.Payout, error) {
	doc, err := r.client.Collection("payouts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payout", err)
		}
		return nil, errors.Internal("Failed to get payout", err)
	}

	var payout entity.Payout
	if err := doc.DataTo(&payout); err != nil {
		return nil, errors.Internal("Failed to parse payout data", err)
	}

	return &payout, nil
}

func (r *firestorePayoutRepository) GetByReference(ctx context.Context, reference string) (*entity.Payout, error) {
	query := r.client.Collection("payouts").Where("reference", "==", reference).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Payout", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get payout", err)
	}

	var payout entity.Payout
	if err := doc.DataTo(&payout); err != nil {
		return nil, errors.Internal("Failed to parse payout data", err)
	}

	return &payout, nil
}

func (r *firestorePayoutRepository) Update(ctx context.Context, payout *entity.Payout) error {
	payout.UpdatedAt = time.Now()
	_, err := r.client.Collection("payouts").Doc(payout.ID).Set(ctx, payout)
	if err != nil {
		return errors.Internal("Failed to update payout", err)
	}
	return nil
}

func (r *firestorePayoutRepository) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	return r.listByField(ctx, "sellerId", sellerID, pagination)
}

func (r *firestorePayoutRepository) ListByStatus(ctx context.Context, payoutStatus string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	return r.listByField(ctx, "status", payoutStatus, pagination)
}

func (r *firestorePayoutRepository) listByField(ctx context.Context, field, value string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	query := r.client.Collection("payouts").Where(field, "==", value)

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

	var payouts []entity.Payout
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list payouts", err)
		}

		var payout entity.Payout
		if err := doc.DataTo(&payout); err != nil {
			log.Printf("Error converting document to payout: %v", err)
			continue
		}

		payouts = append(payouts, payout)
	}

	if payouts == nil {
		payouts = []entity.Payout{}
	}

	return payouts, total, nil
}
