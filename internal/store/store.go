// Package store owns the in-memory collection of conversation threads and
// the active-selection pointer. All mutation of conversation data goes
// through this type, never through direct field access, so the single
// invariant — the active id always refers to a conversation in the sequence —
// is enforced in one place.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/model"
)

// Store is safe for concurrent use. The mutex also gives the append
// guarantee: two appends to the same conversation never interleave.
type Store struct {
	mu     sync.Mutex
	order  []*model.FullConversation // most-recent-first
	byID   map[string]*model.FullConversation
	active string // empty means no active conversation
}

func New() *Store {
	return &Store{byID: make(map[string]*model.FullConversation)}
}

// Create allocates a new conversation with an empty transcript, inserts it
// at the front of the sequence and makes it active.
func (s *Store) Create(provider, modelValue string) model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv := &model.FullConversation{
		Conversation: model.Conversation{
			ID:        uuid.NewString(),
			Title:     "New conversation",
			Provider:  provider,
			Model:     modelValue,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	s.order = append([]*model.FullConversation{conv}, s.order...)
	s.byID[conv.ID] = conv
	s.active = conv.ID
	return conv.Conversation
}

// Insert places an already-materialized conversation (typically loaded from
// the repository at startup) at the back of the sequence without touching
// the active pointer. Returns an error on a duplicate id, since id
// uniqueness is a correctness requirement.
func (s *Store) Insert(conv model.FullConversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[conv.ID]; ok {
		return fmt.Errorf("store: duplicate conversation id %q", conv.ID)
	}
	c := conv
	s.order = append(s.order, &c)
	s.byID[c.ID] = &c
	return nil
}

// Append adds a message to the identified conversation. An unknown id is an
// orchestration bug, so it is surfaced as an error rather than dropped.
func (s *Store) Append(conversationID string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[conversationID]
	if !ok {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// SetTitle replaces the conversation title.
func (s *Store) SetTitle(conversationID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[conversationID]
	if !ok {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	conv.Title = title
	return nil
}

// SetActive moves the active pointer. Fails on an unknown id so the pointer
// can never dangle.
func (s *Store) SetActive(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[conversationID]; !ok {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	s.active = conversationID
	return nil
}

// Active returns a snapshot of the active conversation, or false when no
// conversation is active.
func (s *Store) Active() (model.FullConversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return model.FullConversation{}, false
	}
	return snapshot(s.byID[s.active]), true
}

// Get returns a snapshot of the identified conversation.
func (s *Store) Get(conversationID string) (model.FullConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[conversationID]
	if !ok {
		return model.FullConversation{}, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	return snapshot(conv), nil
}

// List returns conversation metadata, most-recent-first.
func (s *Store) List() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Conversation, len(s.order))
	for i, conv := range s.order {
		out[i] = conv.Conversation
	}
	return out
}

// Len returns the number of conversations in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// snapshot copies the conversation so callers can read it without holding
// the store lock. The message slice is copied; messages themselves are
// immutable by convention.
func snapshot(conv *model.FullConversation) model.FullConversation {
	out := *conv
	out.Messages = make([]model.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return out
}
