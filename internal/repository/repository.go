package repository

import (
	"context"

	"omnichat/backend/internal/model"
)

// Repository defines the interface for the durable layer: conversation
// history plus the small key/value slots (credential, selection). The store
// stays authoritative in memory; the repository is write-through so a
// restart keeps history.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error
	UpdateConversationTitle(ctx context.Context, conversationID, title string) error
	ListConversations(ctx context.Context) ([]model.Conversation, error)
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
