package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/model"
	"omnichat/backend/internal/repository"
	repo_mocks "omnichat/backend/internal/repository/mocks"
	"omnichat/backend/internal/service"
	"omnichat/backend/internal/store"
	upstream_mocks "omnichat/backend/internal/upstream/mocks"
)

type uploadMocks struct {
	repo     *repo_mocks.MockRepository
	client   *upstream_mocks.MockClient
	store    *store.Store
	errState *service.ErrorState
}

func setupUploadService(t *testing.T) (*service.UploadService, *uploadMocks) {
	repo := repo_mocks.NewMockRepository(t)
	client := upstream_mocks.NewMockClient(t)

	repo.On("GetSetting", mock.Anything, "provider").Return("", repository.ErrNotFound).Once()
	repo.On("GetSetting", mock.Anything, "model").Return("", repository.ErrNotFound).Once()
	selection := service.NewSelectionService(repo)
	require.NoError(t, selection.Init(context.Background(), "openai"))

	st := store.New()
	errState := service.NewErrorState()
	svc := service.NewUploadService(st, repo, client, selection, errState, 5*time.Second)
	return svc, &uploadMocks{repo: repo, client: client, store: st, errState: errState}
}

func TestUploadService_Upload_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := setupUploadService(t)

	m.client.On("Upload", mock.Anything, "notes.pdf", mock.Anything).Return("extracted text", nil).Once()
	m.repo.On("CreateConversation", mock.Anything, mock.Anything).Return(nil).Once()
	m.repo.On("AppendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	m.repo.On("UpdateConversationTitle", mock.Anything, mock.Anything, "Uploaded file: notes.pdf").Return(nil).Once()

	result, err := svc.Upload(ctx, "notes.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "extracted text", result.Text)

	conv, getErr := m.store.Get(result.ConversationID)
	require.NoError(t, getErr)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "Uploaded file: notes.pdf", conv.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "extracted text", conv.Messages[1].Content)
	assert.Equal(t, "Uploaded file: notes.pdf", conv.Title)
}

func TestUploadService_Upload_UsesActiveConversation(t *testing.T) {
	ctx := context.Background()
	svc, m := setupUploadService(t)

	existing := m.store.Create("openai", "gpt-4o")
	require.NoError(t, m.store.Append(existing.ID, model.Message{ID: "m1", Role: model.RoleUser, Content: "earlier"}))

	m.client.On("Upload", mock.Anything, "data.csv", mock.Anything).Return("rows", nil).Once()
	m.repo.On("AppendMessage", mock.Anything, existing.ID, mock.Anything).Return(nil).Twice()

	result, err := svc.Upload(ctx, "data.csv", strings.NewReader("a,b"))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.ConversationID, "an active conversation is reused, not replaced")

	conv, getErr := m.store.Get(existing.ID)
	require.NoError(t, getErr)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, "New conversation", conv.Title, "a conversation with history keeps its title")
}

func TestUploadService_Upload_FailureAppendsNothing(t *testing.T) {
	ctx := context.Background()
	svc, m := setupUploadService(t)

	m.client.On("Upload", mock.Anything, "broken.bin", mock.Anything).
		Return("", app_errors.ErrUpstream).Once()

	_, err := svc.Upload(ctx, "broken.bin", strings.NewReader("junk"))
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrUpstream)

	assert.Zero(t, m.store.Len(), "a failed extraction must not create or touch conversations")
	assert.NotEmpty(t, m.errState.Get())
}

func TestUploadService_Upload_Timeout(t *testing.T) {
	ctx := context.Background()
	svc, m := setupUploadService(t)

	m.client.On("Upload", mock.Anything, "slow.pdf", mock.Anything).
		Return("", context.DeadlineExceeded).Once()

	_, err := svc.Upload(ctx, "slow.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrTimeout)
	assert.Zero(t, m.store.Len())
}

func TestUploadService_Upload_ClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	svc, m := setupUploadService(t)
	m.errState.Set("stale error")

	m.client.On("Upload", mock.Anything, "ok.txt", mock.Anything).Return("text", nil).Once()
	m.repo.On("CreateConversation", mock.Anything, mock.Anything).Return(nil).Once()
	m.repo.On("AppendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	m.repo.On("UpdateConversationTitle", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.Upload(ctx, "ok.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Empty(t, m.errState.Get())
}
