package repository

import (
	"context"
	"time"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByBuyerID(ctx context.Context, buyerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error)

	// ListDeliveredUnreleased returns delivered orders whose escrow has not
	// been released and that were delivered before the given cutoff. Used by
	// the auto-release job.
	ListDeliveredUnreleased(ctx context.Context, deliveredBefore time.Time, limit int) ([]*entity.Order, error)
}
