package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/repository"
	"omnichat/backend/internal/upstream"
)

// credentialKey is the fixed name of the durable slot the key lives in.
const credentialKey = "apiKey"

// CredentialService holds the single API key. One value is shared across all
// providers — a known simplification of the sampled system, kept on purpose.
// The key is persisted locally and forwarded to the upstream key-storage
// endpoint on save.
type CredentialService struct {
	repo     repository.Repository
	upstream upstream.Client

	mu     sync.Mutex
	cached string
}

func NewCredentialService(repo repository.Repository, client upstream.Client) *CredentialService {
	return &CredentialService{repo: repo, upstream: client}
}

// Load pre-populates the in-memory value from the durable slot. A missing
// slot is not an error; it just means no key has been saved yet.
func (s *CredentialService) Load(ctx context.Context) error {
	value, err := s.repo.GetSetting(ctx, credentialKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("could not load credential: %w", err)
	}
	s.mu.Lock()
	s.cached = value
	s.mu.Unlock()
	return nil
}

// Cached returns the in-memory key, empty when none has been saved.
func (s *CredentialService) Cached() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}

// Save validates, persists and forwards the key. An empty key is rejected
// before the slot is touched. The same value is submitted under every
// provider's field upstream; no per-provider keys are derived.
func (s *CredentialService) Save(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: API key must not be empty", app_errors.ErrValidation)
	}

	if err := s.repo.SetSetting(ctx, credentialKey, apiKey); err != nil {
		return fmt.Errorf("could not persist credential: %w", err)
	}
	s.mu.Lock()
	s.cached = apiKey
	s.mu.Unlock()

	// The local slot stays updated even if the upstream rejects the call;
	// the key remains usable for request authentication this session.
	if err := s.upstream.StoreKeys(ctx, apiKey); err != nil {
		return err
	}
	return nil
}
