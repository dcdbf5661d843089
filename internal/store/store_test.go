package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/model"
	"omnichat/backend/internal/store"
)

func TestStore_CreateAndActive(t *testing.T) {
	s := store.New()

	_, ok := s.Active()
	assert.False(t, ok, "empty store must have no active conversation")

	first := s.Create("openai", "gpt-4o")
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID, "create must make the new conversation active")
	assert.Equal(t, "openai", active.Provider)
	assert.Equal(t, "gpt-4o", active.Model)
	assert.Empty(t, active.Messages)

	second := s.Create("claude", "claude-3-opus")
	assert.NotEqual(t, first.ID, second.ID, "ids must be unique")

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest conversation comes first")
	assert.Equal(t, first.ID, list[1].ID)
}

func TestStore_SetActive(t *testing.T) {
	s := store.New()
	first := s.Create("openai", "gpt-4o")
	s.Create("openai", "gpt-4o")

	require.NoError(t, s.SetActive(first.ID))
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)

	err := s.SetActive("no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)

	// A failed SetActive must not move the pointer.
	active, ok = s.Active()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)
}

func TestStore_Append(t *testing.T) {
	s := store.New()
	conv := s.Create("openai", "gpt-4o")

	msg := model.Message{ID: "m1", Role: model.RoleUser, Content: "hello", CreatedAt: time.Now()}
	require.NoError(t, s.Append(conv.ID, msg))

	got, err := s.Get(conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)

	err = s.Append("no-such-id", msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestStore_AppendOrder(t *testing.T) {
	s := store.New()
	conv := s.Create("openai", "gpt-4o")

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, s.Append(conv.ID, model.Message{ID: content, Role: model.RoleUser, Content: content}))
	}

	got, err := s.Get(conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "one", got.Messages[0].Content)
	assert.Equal(t, "two", got.Messages[1].Content)
	assert.Equal(t, "three", got.Messages[2].Content)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := store.New()
	conv := s.Create("openai", "gpt-4o")
	require.NoError(t, s.Append(conv.ID, model.Message{ID: "m1", Role: model.RoleUser, Content: "hello"}))

	snap, err := s.Get(conv.ID)
	require.NoError(t, err)
	snap.Messages[0].Content = "mutated"

	fresh, err := s.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", fresh.Messages[0].Content, "snapshots must not alias store state")
}

func TestStore_Insert(t *testing.T) {
	s := store.New()
	loaded := model.FullConversation{
		Conversation: model.Conversation{ID: "c1", Provider: "openai", Model: "gpt-4o"},
		Messages:     []model.Message{{ID: "m1", Role: model.RoleUser, Content: "restored"}},
	}
	require.NoError(t, s.Insert(loaded))

	// Hydration must not pick an active conversation.
	_, ok := s.Active()
	assert.False(t, ok)

	err := s.Insert(loaded)
	require.Error(t, err, "duplicate ids are a correctness bug")

	got, err := s.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, "restored", got.Messages[0].Content)
}
