package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/registry"
	"omnichat/backend/internal/repository"
)

const (
	providerKey = "provider"
	modelKey    = "model"
)

// Selection is the current provider/model pair new conversations are created
// with. Existing conversations keep the pair they were created with.
type Selection struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// SelectionService guards the selection invariant: the model always belongs
// to the selected provider, and switching provider resets the model to that
// provider's default. The pair is persisted in the settings slots so it
// survives a restart.
type SelectionService struct {
	repo repository.Repository

	mu      sync.Mutex
	current Selection
}

func NewSelectionService(repo repository.Repository) *SelectionService {
	return &SelectionService{repo: repo}
}

// Init loads the persisted selection, falling back to the configured default
// provider and its first model. A persisted value that no longer matches the
// catalog is discarded rather than trusted.
func (s *SelectionService) Init(ctx context.Context, defaultProvider string) error {
	if !registry.IsKnown(defaultProvider) {
		return fmt.Errorf("default provider %q is not in the catalog", defaultProvider)
	}

	provider := defaultProvider
	if saved, err := s.repo.GetSetting(ctx, providerKey); err == nil && registry.IsKnown(saved) {
		provider = saved
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("could not load selection: %w", err)
	}

	defaultModel, err := registry.DefaultModel(provider)
	if err != nil {
		return err
	}
	model := defaultModel
	if saved, err := s.repo.GetSetting(ctx, modelKey); err == nil && registry.OffersModel(provider, saved) {
		model = saved
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("could not load selection: %w", err)
	}

	s.mu.Lock()
	s.current = Selection{Provider: provider, Model: model}
	s.mu.Unlock()
	return nil
}

// Get returns the current selection.
func (s *SelectionService) Get() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetProvider switches the provider and resets the model to the new
// provider's first listed model. A stale cross-provider model value is never
// retained.
func (s *SelectionService) SetProvider(ctx context.Context, provider string) (Selection, error) {
	if !registry.IsKnown(provider) {
		return Selection{}, fmt.Errorf("%w: unknown provider %q", app_errors.ErrValidation, provider)
	}
	defaultModel, err := registry.DefaultModel(provider)
	if err != nil {
		return Selection{}, err
	}

	s.mu.Lock()
	s.current = Selection{Provider: provider, Model: defaultModel}
	updated := s.current
	s.mu.Unlock()

	s.persist(ctx, updated)
	return updated, nil
}

// SetModel changes the model within the current provider's list.
func (s *SelectionService) SetModel(ctx context.Context, model string) (Selection, error) {
	s.mu.Lock()
	provider := s.current.Provider
	s.mu.Unlock()

	if !registry.OffersModel(provider, model) {
		return Selection{}, fmt.Errorf("%w: provider %q does not offer model %q", app_errors.ErrValidation, provider, model)
	}

	s.mu.Lock()
	s.current.Model = model
	updated := s.current
	s.mu.Unlock()

	s.persist(ctx, updated)
	return updated, nil
}

// persist writes the selection slots. Persistence failures are logged, not
// surfaced: the in-memory selection is authoritative for this session.
func (s *SelectionService) persist(ctx context.Context, sel Selection) {
	if err := s.repo.SetSetting(ctx, providerKey, sel.Provider); err != nil {
		slog.Warn("Failed to persist provider selection", "error", err)
	}
	if err := s.repo.SetSetting(ctx, modelKey, sel.Model); err != nil {
		slog.Warn("Failed to persist model selection", "error", err)
	}
}
