package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato/internal/domain/entity"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type memChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages []entity.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: map[string]*entity.Chat{}}
}

func (r *memChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	cp := *chat
	return &cp, nil
}

func (r *memChatRepo) GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if chat.BuyerID == buyerID && chat.SellerID == sellerID && chat.ProductID == productID {
			cp := *chat
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *memChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	return r.Create(ctx, chat)
}

func (r *memChatRepo) ListByUserID(ctx context.Context, userID string, pagination *utils.Pagination) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var chats []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			cp := *chat
			chats = append(chats, &cp)
		}
	}
	return chats, nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, chatID string, pagination *utils.Pagination) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var messages []*entity.Message
	for i := range r.messages {
		if r.messages[i].ChatID == chatID {
			cp := r.messages[i]
			messages = append(messages, &cp)
		}
	}
	return messages, nil
}

func (r *memChatRepo) MarkMessagesRead(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ChatID == chatID {
			r.messages[i].ReadBy = append(r.messages[i].ReadBy, userID)
		}
	}
	return nil
}

type pushRecord struct {
	userID string
	event  string
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []pushRecord
}

func (p *recordingPusher) SendToUser(userID, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, pushRecord{userID: userID, event: event})
}

func newChatTestEnv(t *testing.T) (*ChatUseCase, *memChatRepo, *recordingPusher) {
	t.Helper()
	users := newMemUserRepo()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "buyer-1", Email: "buyer@example.com", Role: entity.RoleBuyer, Status: "active"}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "seller-1", Email: "seller@example.com", Role: entity.RoleSeller, Status: "active"}))

	chats := newMemChatRepo()
	pusher := &recordingPusher{}
	return NewChatUseCase(chats, users, pusher), chats, pusher
}

func TestStartChatCreatesConversation(t *testing.T) {
	uc, chats, pusher := newChatTestEnv(t)
	ctx := context.Background()

	chat, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "seller-1", ProductID: "prod-1", Message: "Is this still available?"})
	require.NoError(t, err)
	assert.Equal(t, "Is this still available?", chat.LastMessage)
	assert.Equal(t, 1, chat.UnreadCount["seller-1"])

	messages, err := chats.ListMessages(ctx, chat.ID, nil)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "buyer-1", messages[0].SenderID)
	assert.Contains(t, messages[0].ReadBy, "buyer-1")

	require.Len(t, pusher.pushes, 1)
	assert.Equal(t, "seller-1", pusher.pushes[0].userID)
	assert.Equal(t, "new_message", pusher.pushes[0].event)
}

func TestStartChatReusesExistingConversation(t *testing.T) {
	uc, chats, _ := newChatTestEnv(t)
	ctx := context.Background()

	first, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "seller-1", ProductID: "prod-1", Message: "Hello"})
	require.NoError(t, err)
	second, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "seller-1", ProductID: "prod-1", Message: "Still there?"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	messages, err := chats.ListMessages(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestStartChatRejectsSelfAndNonSellers(t *testing.T) {
	uc, _, _ := newChatTestEnv(t)
	ctx := context.Background()

	_, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "buyer-1", Message: "Hi me"})
	assertAppErrorStatus(t, err, http.StatusBadRequest)

	_, err = uc.StartChat(ctx, "seller-1", StartChatInput{SellerID: "buyer-1", Message: "Hi"})
	assertAppErrorStatus(t, err, http.StatusBadRequest)
}

func TestSendMessageRequiresParticipation(t *testing.T) {
	uc, _, _ := newChatTestEnv(t)
	ctx := context.Background()

	chat, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "seller-1", Message: "Hello"})
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "stranger-1", chat.ID, SendMessageInput{Content: "let me in"})
	assertAppErrorStatus(t, err, http.StatusNotFound)
}

func TestMarkReadClearsUnread(t *testing.T) {
	uc, chats, _ := newChatTestEnv(t)
	ctx := context.Background()

	chat, err := uc.StartChat(ctx, "buyer-1", StartChatInput{SellerID: "seller-1", Message: "Hello"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, "seller-1", chat.ID))

	updated, err := chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.UnreadCount["seller-1"])

	messages, err := chats.ListMessages(ctx, chat.ID, nil)
	require.NoError(t, err)
	assert.Contains(t, messages[0].ReadBy, "seller-1")
}
