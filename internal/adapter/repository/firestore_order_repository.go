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

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()
	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) ListByBuyerID(ctx context.Context, buyerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "buyerId", buyerID, pagination)
}

func (r *firestoreOrderRepository) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "sellerId", sellerID, pagination)
}

func (r *firestoreOrderRepository) listByField(ctx context.Context, field, value string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Where(field, "==", value)

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

	var orders []*entity.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			log.Printf("Error converting document to order: %v", err)
			continue
		}

		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) ListDeliveredUnreleased(ctx context.Context, deliveredBefore time.Time, limit int) ([]*entity.Order, error) {
	query := r.client.Collection("orders").
		Where("status", "==", entity.OrderStatusDelivered).
		Where("fundsReleased", "==", false).
		Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var orders []*entity.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list unreleased orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			log.Printf("Error converting document to order: %v", err)
			continue
		}

		// The cutoff check stays in memory so no composite index on
		// status + fundsReleased + deliveredAt is needed.
		if order.DeliveredAt == nil || order.DeliveredAt.After(deliveredBefore) {
			continue
		}

		orders = append(orders, &order)
	}

	return orders, nil
}
