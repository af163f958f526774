package repository

import (
	"context"

	"mercato/internal/domain/entity"
	"mercato/pkg/utils"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error
	ListByUserID(ctx context.Context, userID string, pagination *utils.Pagination) ([]*entity.Chat, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, pagination *utils.Pagination) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, userID string) error
}
