package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.User, int64, error)
}
