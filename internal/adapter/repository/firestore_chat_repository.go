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

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("buyerId", "==", buyerID).
		Where("sellerId", "==", sellerID).
		Where("productId", "==", productID).
		Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Chat", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	chat.UpdatedAt = time.Now()
	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, pagination *utils.Pagination) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").Where("participants", "array-contains", userID)

	if pagination.Page > 1 {
		query = query.Offset(pagination.Offset())
	}
	query = query.Limit(pagination.Limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var chats []*entity.Chat
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list chats", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			log.Printf("Error converting document to chat: %v", err)
			continue
		}

		chats = append(chats, &chat)
	}

	if chats == nil {
		chats = []*entity.Chat{}
	}

	return chats, nil
}

// Messages live in a subcollection under their chat document.
func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, pagination *utils.Pagination) ([]*entity.Message, error) {
	query := r.client.Collection("chats").Doc(chatID).
		Collection("messages").
		OrderBy("createdAt", firestore.Desc)

	if pagination.Page > 1 {
		query = query.Offset(pagination.Offset())
	}
	query = query.Limit(pagination.Limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error converting document to message: %v", err)
			continue
		}

		messages = append(messages, &message)
	}

	if messages == nil {
		messages = []*entity.Message{}
	}

	return messages, nil
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, chatID, userID string) error {
	iter := r.client.Collection("chats").Doc(chatID).
		Collection("messages").Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to mark messages read", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error converting document to message: %v", err)
			continue
		}

		if containsString(message.ReadBy, userID) {
			continue
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "readBy", Value: firestore.ArrayUnion(userID)},
		}); err != nil {
			log.Printf("Failed to mark message %s read: %v", message.ID, err)
		}
	}

	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
