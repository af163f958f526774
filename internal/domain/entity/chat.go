package entity

import "time"

type Chat struct {
	ID           string         `json:"id" firestore:"id"`
	Participants []string       `json:"participants" firestore:"participants"`
	BuyerID      string         `json:"buyer_id" firestore:"buyerId"`
	SellerID     string         `json:"seller_id" firestore:"sellerId"`
	ProductID    string         `json:"product_id,omitempty" firestore:"productId,omitempty"`
	OrderID      string         `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	CreatedAt    time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time      `json:"updated_at" firestore:"updatedAt"`
	LastMessage  string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time     `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount  map[string]int `json:"unread_count" firestore:"unreadCount"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	Type      string    `json:"type" firestore:"type"` // text, system
	ReadBy    []string  `json:"read_by" firestore:"readBy"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
