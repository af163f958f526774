package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Product, int64, error)
}
