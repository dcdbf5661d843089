package interfaces

import (
	"context"
	"io"

	"omnichat/backend/internal/model"
	"omnichat/backend/internal/service"
)

// This file defines the interfaces the API layer depends on. Handlers never
// see concrete service types, which keeps them mockable in tests.

// ChatService defines the contract for the conversation orchestrator.
type ChatService interface {
	SendMessage(ctx context.Context, content string) (*service.SendResult, error)
	NewConversation(ctx context.Context) (model.Conversation, error)
	SwitchConversation(ctx context.Context, conversationID string) error
	ListConversations() []model.Conversation
	GetConversation(conversationID string) (model.FullConversation, error)
	ActiveConversation() (model.FullConversation, bool)
	State() model.State
}

// UploadService defines the contract for the file-extraction flow.
type UploadService interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*service.UploadResult, error)
}

// CredentialService defines the contract for the API key slot.
type CredentialService interface {
	Save(ctx context.Context, apiKey string) error
	Cached() string
}

// SelectionService defines the contract for the provider/model selection.
type SelectionService interface {
	Get() service.Selection
	SetProvider(ctx context.Context, provider string) (service.Selection, error)
	SetModel(ctx context.Context, model string) (service.Selection, error)
}
