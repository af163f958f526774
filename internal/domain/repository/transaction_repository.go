package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Transaction, int64, error)
}
