package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

// WorkspaceService serves each user's saved layout, falling back to the
// shared default held by source.
type WorkspaceService struct {
	store    ports.LayoutStore
	source   *workspace.Source
	identity ports.IdentityProvider
	logger   zerolog.Logger
}

func NewWorkspaceService(store ports.LayoutStore, source *workspace.Source, identity ports.IdentityProvider, logger zerolog.Logger) *WorkspaceService {
	return &WorkspaceService{
		store:    store,
		source:   source,
		identity: identity,
		logger:   logger,
	}
}

// Layout returns the caller's saved layout. A missing or unreadable saved
// layout yields the default.
func (s *WorkspaceService) Layout(ctx context.Context) (*workspace.Model, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.Get(ctx, user.ID)
	switch {
	case errors.Is(err, domain.ErrLayoutNotFound):
		return s.source.Current(), nil
	case err != nil:
		return nil, &domain.RemoteStoreError{Op: "fetch layout", Err: err}
	}

	m, err := workspace.Parse(raw, workspace.FormatJSON)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("stored layout is invalid, serving default")
		return s.source.Current(), nil
	}
	return m, nil
}

func (s *WorkspaceService) SaveLayout(ctx context.Context, m *workspace.Model) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.NewValidationError("layout is required")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, user.ID, raw); err != nil {
		return &domain.RemoteStoreError{Op: "save layout", Err: err}
	}
	return nil
}

// ResetLayout drops the caller's saved layout and returns the default.
func (s *WorkspaceService) ResetLayout(ctx context.Context) (*workspace.Model, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, user.ID); err != nil {
		return nil, &domain.RemoteStoreError{Op: "reset layout", Err: err}
	}
	return s.source.Current(), nil
}

// NewTab synthesizes a tab for one of the renderable components. Names
// continue the numbering found in the caller's layout.
func (s *WorkspaceService) NewTab(ctx context.Context, component, label string) (workspace.Node, error) {
	if _, err := s.requireUser(ctx); err != nil {
		return workspace.Node{}, err
	}

	component = strings.TrimSpace(component)
	if !slices.Contains(workspace.Components(), component) {
		return workspace.Node{}, domain.NewValidationError("unknown component %q", component)
	}

	m, err := s.Layout(ctx)
	if err != nil {
		return workspace.Node{}, err
	}
	return workspace.TabFactoryFor(m).NewTab(component, strings.TrimSpace(label)), nil
}

func (s *WorkspaceService) Palette() []workspace.PaletteItem {
	return slices.Clone(workspace.Palette)
}

func (s *WorkspaceService) requireUser(ctx context.Context) (*domain.User, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil || user == nil || user.ID == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	return user, nil
}
