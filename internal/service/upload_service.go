package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/model"
	"omnichat/backend/internal/repository"
	"omnichat/backend/internal/store"
	"omnichat/backend/internal/upstream"
)

// UploadService packages a file for the extraction endpoint and injects the
// result into the active conversation. Upload and send are independent
// request slots: an upload may run while a send is in flight, and their
// completion order is not defined.
type UploadService struct {
	store     *store.Store
	repo      repository.Repository
	upstream  upstream.Client
	selection *SelectionService
	errState  *ErrorState

	timeout time.Duration
}

// UploadResult is what a successful upload returns to the handler.
type UploadResult struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

func NewUploadService(
	st *store.Store,
	repo repository.Repository,
	client upstream.Client,
	selection *SelectionService,
	errState *ErrorState,
	timeout time.Duration,
) *UploadService {
	return &UploadService{
		store:     st,
		repo:      repo,
		upstream:  client,
		selection: selection,
		errState:  errState,
		timeout:   timeout,
	}
}

// Upload sends the file to the extraction endpoint. On success it appends a
// user message naming the upload and an assistant message carrying the
// extracted text to the active conversation, creating one transparently when
// none exists. On failure nothing is appended and the error is reported.
func (s *UploadService) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	s.errState.Clear()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.upstream.Upload(callCtx, filename, file)
	if err != nil {
		err = s.mapError(callCtx, err)
		s.errState.Set(reportedMessage(err))
		return nil, err
	}

	conv, ok := s.store.Active()
	if !ok {
		sel := s.selection.Get()
		created := s.store.Create(sel.Provider, sel.Model)
		if repoErr := s.repo.CreateConversation(ctx, &created); repoErr != nil {
			slogWarnPersist("conversation", created.ID, repoErr)
		}
		conv = model.FullConversation{Conversation: created}
	}
	conversationID := conv.ID

	userMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   fmt.Sprintf("Uploaded file: %s", filename),
		CreatedAt: time.Now().UTC(),
	}
	assistantMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Append(conversationID, userMsg); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	if err := s.store.Append(conversationID, assistantMsg); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	if repoErr := s.repo.AppendMessage(ctx, conversationID, &userMsg); repoErr != nil {
		slogWarnPersist("message", userMsg.ID, repoErr)
	}
	if repoErr := s.repo.AppendMessage(ctx, conversationID, &assistantMsg); repoErr != nil {
		slogWarnPersist("message", assistantMsg.ID, repoErr)
	}

	if len(conv.Messages) == 0 {
		title := truncate(userMsg.Content, titleLimit)
		if err := s.store.SetTitle(conversationID, title); err == nil {
			if repoErr := s.repo.UpdateConversationTitle(ctx, conversationID, title); repoErr != nil {
				slogWarnPersist("title", conversationID, repoErr)
			}
		}
	}

	return &UploadResult{ConversationID: conversationID, Text: text}, nil
}

func slogWarnPersist(kind, id string, err error) {
	slog.Warn("Failed to persist "+kind, "id", id, "error", err)
}

func (s *UploadService) mapError(callCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: extraction took longer than %s", app_errors.ErrTimeout, s.timeout)
	}
	if errors.Is(err, app_errors.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
}
