package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout *entity.Payout) error
	GetByID(ctx context.Context, id string) (*entity.Payout, error)
	GetByReference(ctx context.Context, reference string) (*entity.Payout, error)
	Update(ctx context.Context, payout *entity.Payout) error
	ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]entity.Payout, int64, error)
	ListByStatus(ctx context.Context, status string, pagination *utils.Pagination) ([]entity.Payout, int64, error)
}
