package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

// MessagePusher delivers real-time events to connected clients. Implemented
// by the websocket manager; a nil pusher silently disables live delivery.
type MessagePusher interface {
	SendToUser(userID, event string, payload interface{})
}

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	pusher   MessagePusher
}

func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository, pusher MessagePusher) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		pusher:   pusher,
	}
}

type StartChatInput struct {
	SellerID  string `json:"seller_id" validate:"required"`
	ProductID string `json:"product_id"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

// StartChat finds the existing buyer-seller conversation for a product or
// creates one, then sends the opening message.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID string, input StartChatInput) (*entity.Chat, error) {
	if buyerID == input.SellerID {
		return nil, errors.BadRequest("You cannot chat with yourself", nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if !seller.IsSeller() {
		return nil, errors.BadRequest("Recipient is not a seller", nil)
	}

	chat, err := uc.chatRepo.GetByParticipants(ctx, buyerID, input.SellerID, input.ProductID)
	if err != nil {
		now := time.Now()
		chat = &entity.Chat{
			ID:           uuid.New().String(),
			Participants: []string{buyerID, input.SellerID},
			BuyerID:      buyerID,
			SellerID:     input.SellerID,
			ProductID:    input.ProductID,
			UnreadCount:  map[string]int{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
		log.Printf("Chat created: id=%s buyer=%s seller=%s", chat.ID, buyerID, input.SellerID)
	}

	if _, err := uc.sendMessage(ctx, chat, buyerID, input.Message, "text"); err != nil {
		return nil, err
	}

	return chat, nil
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, chatID string, input SendMessageInput) (*entity.Message, error) {
	chat, err := uc.getParticipantChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return uc.sendMessage(ctx, chat, userID, input.Content, "text")
}

func (uc *ChatUseCase) sendMessage(ctx context.Context, chat *entity.Chat, senderID, content, messageType string) (*entity.Message, error) {
	now := time.Now()
	message := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chat.ID,
		SenderID:  senderID,
		Content:   content,
		Type:      messageType,
		ReadBy:    []string{senderID},
		CreatedAt: now,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = content
	chat.LastMessageAt = now
	chat.UpdatedAt = now
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	for _, participant := range chat.Participants {
		if participant != senderID {
			chat.UnreadCount[participant]++
		}
	}

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		log.Printf("Failed to update chat %s after message: %v", chat.ID, err)
	}

	if uc.pusher != nil {
		for _, participant := range chat.Participants {
			if participant != senderID {
				uc.pusher.SendToUser(participant, "new_message", message)
			}
		}
	}

	return message, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, pagination *utils.Pagination) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, pagination)
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string, pagination *utils.Pagination) ([]*entity.Message, error) {
	if _, err := uc.getParticipantChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return uc.chatRepo.ListMessages(ctx, chatID, pagination)
}

// MarkRead clears the caller's unread counter and marks messages read.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.getParticipantChat(ctx, userID, chatID)
	if err != nil {
		return err
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return err
	}

	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[userID] = 0
	chat.UpdatedAt = time.Now()

	return uc.chatRepo.Update(ctx, chat)
}

func (uc *ChatUseCase) getParticipantChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, errors.NotFound("Chat", err)
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}
