package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/model"
	"omnichat/backend/internal/repository"
	"omnichat/backend/internal/store"
	"omnichat/backend/internal/upstream"
)

const titleLimit = 50

// ChatService is the request orchestrator. A send runs through
// Idle -> Validating -> Sending -> {Succeeded, Failed} -> Idle: local
// validation first (no network call on rejection), then the optimistic user
// append, exactly one outbound call, and the terminal append or reported
// error. Only one send may be in flight at a time; a second one is dropped
// without touching any state.
type ChatService struct {
	store     *store.Store
	repo      repository.Repository
	upstream  upstream.Client
	selection *SelectionService
	creds     *CredentialService
	errState  *ErrorState

	defaultProvider string
	timeout         time.Duration

	sending atomic.Bool
}

// SendResult is what a successful send returns to the handler.
type SendResult struct {
	ConversationID string        `json:"conversation_id"`
	Reply          model.Message `json:"reply"`
	Cost           float64       `json:"cost"`
}

func NewChatService(
	st *store.Store,
	repo repository.Repository,
	client upstream.Client,
	selection *SelectionService,
	creds *CredentialService,
	errState *ErrorState,
	defaultProvider string,
	timeout time.Duration,
) *ChatService {
	return &ChatService{
		store:           st,
		repo:            repo,
		upstream:        client,
		selection:       selection,
		creds:           creds,
		errState:        errState,
		defaultProvider: defaultProvider,
		timeout:         timeout,
	}
}

// SendMessage processes one prompt end to end. The target conversation id is
// captured before the outbound call, so the assistant reply always lands in
// the conversation that originated it even if the user switches threads
// while the request is in flight.
func (s *ChatService) SendMessage(ctx context.Context, content string) (*SendResult, error) {
	// Single in-flight request slot. A send while one is outstanding is
	// dropped: no mutation, no outbound call, no reported-error change.
	if !s.sending.CompareAndSwap(false, true) {
		return nil, app_errors.ErrBusy
	}
	defer s.sending.Store(false)

	prompt := strings.TrimSpace(content)
	if prompt == "" {
		return nil, s.reject(fmt.Errorf("%w: prompt must not be empty", app_errors.ErrValidation))
	}

	// The target provider/model come from the active conversation when one
	// exists (they were fixed at its creation), otherwise from the current
	// selection.
	targetProvider, targetModel := s.target()

	if targetProvider != s.defaultProvider && s.creds.Cached() == "" {
		return nil, s.reject(fmt.Errorf("%w: save an API key to use %s", app_errors.ErrMissingCredential, targetProvider))
	}
	// Live-response feature gate: only the default provider answers for
	// real; the rest are short-circuited locally.
	if targetProvider != s.defaultProvider {
		return nil, s.reject(fmt.Errorf("%w: %s is not available yet, switch to %s for live responses",
			app_errors.ErrUnsupportedProvider, targetProvider, s.defaultProvider))
	}

	conv, ok := s.store.Active()
	if !ok {
		conv = s.createConversation(ctx, targetProvider, targetModel)
	}
	conversationID := conv.ID

	userMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   prompt,
		CreatedAt: time.Now().UTC(),
	}
	// Optimistic append: the user's message is visible before the call
	// resolves and is never rolled back on failure.
	if err := s.store.Append(conversationID, userMsg); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	s.persistMessage(ctx, conversationID, &userMsg)
	if len(conv.Messages) == 0 {
		s.setTitle(ctx, conversationID, truncate(prompt, titleLimit))
	}

	s.errState.Clear()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &upstream.GenerateRequest{Model: targetModel, Prompt: prompt}
	if targetProvider != s.defaultProvider {
		req.APIKey = s.creds.Cached()
	}

	resp, err := s.upstream.Generate(callCtx, req)
	if err != nil {
		err = s.mapUpstreamError(callCtx, err)
		s.errState.Set(reportedMessage(err))
		return nil, err
	}

	assistantMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   resp.Response,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Append(conversationID, assistantMsg); err != nil {
		slog.Error("Failed to append assistant message", "conversation_id", conversationID, "error", err)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	s.persistMessage(ctx, conversationID, &assistantMsg)

	return &SendResult{ConversationID: conversationID, Reply: assistantMsg, Cost: resp.Cost}, nil
}

// NewConversation creates an empty conversation from the current selection
// and makes it active.
func (s *ChatService) NewConversation(ctx context.Context) (model.Conversation, error) {
	sel := s.selection.Get()
	conv := s.store.Create(sel.Provider, sel.Model)
	if err := s.repo.CreateConversation(ctx, &conv); err != nil {
		slog.Warn("Failed to persist new conversation", "conversation_id", conv.ID, "error", err)
	}
	return conv, nil
}

// SwitchConversation moves the active pointer. Allowed while a send is in
// flight; the in-flight reply still lands in its originating conversation.
func (s *ChatService) SwitchConversation(ctx context.Context, conversationID string) error {
	return s.store.SetActive(conversationID)
}

// ListConversations returns conversation metadata, most-recent-first.
func (s *ChatService) ListConversations() []model.Conversation {
	return s.store.List()
}

// GetConversation returns one full transcript.
func (s *ChatService) GetConversation(conversationID string) (model.FullConversation, error) {
	return s.store.Get(conversationID)
}

// ActiveConversation returns the active transcript, or false when none.
func (s *ChatService) ActiveConversation() (model.FullConversation, bool) {
	return s.store.Active()
}

// State reports the loading flag and the last reported error.
func (s *ChatService) State() model.State {
	return model.State{Loading: s.sending.Load(), LastError: s.errState.Get()}
}

func (s *ChatService) target() (provider, modelValue string) {
	if conv, ok := s.store.Active(); ok {
		return conv.Provider, conv.Model
	}
	sel := s.selection.Get()
	return sel.Provider, sel.Model
}

func (s *ChatService) createConversation(ctx context.Context, provider, modelValue string) model.FullConversation {
	conv := s.store.Create(provider, modelValue)
	if err := s.repo.CreateConversation(ctx, &conv); err != nil {
		slog.Warn("Failed to persist conversation", "conversation_id", conv.ID, "error", err)
	}
	return model.FullConversation{Conversation: conv}
}

// persistMessage writes through to the repository. Persistence failures are
// logged but do not fail the send; the in-memory transcript is authoritative
// for the session.
func (s *ChatService) persistMessage(ctx context.Context, conversationID string, msg *model.Message) {
	if err := s.repo.AppendMessage(ctx, conversationID, msg); err != nil {
		slog.Warn("Failed to persist message", "conversation_id", conversationID, "error", err)
	}
}

func (s *ChatService) setTitle(ctx context.Context, conversationID, title string) {
	if err := s.store.SetTitle(conversationID, title); err != nil {
		slog.Warn("Failed to set conversation title", "conversation_id", conversationID, "error", err)
		return
	}
	if err := s.repo.UpdateConversationTitle(ctx, conversationID, title); err != nil {
		slog.Warn("Failed to persist conversation title", "conversation_id", conversationID, "error", err)
	}
}

// reject records a validation-stage error as the reported error and returns
// it. No network call has been made at this point.
func (s *ChatService) reject(err error) error {
	s.errState.Set(reportedMessage(err))
	return err
}

func (s *ChatService) mapUpstreamError(callCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: no answer within %s", app_errors.ErrTimeout, s.timeout)
	}
	if errors.Is(err, app_errors.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
}

// reportedMessage prefers the server-supplied detail and falls back to a
// generic message.
func reportedMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Something went wrong. Please try again."
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
