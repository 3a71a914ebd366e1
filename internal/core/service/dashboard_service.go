package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// DashboardService scopes every dashboard operation to the caller resolved
// by the identity provider. Admins bypass ownership on single-record paths.
type DashboardService struct {
	store    ports.DashboardStore
	identity ports.IdentityProvider
	logger   zerolog.Logger
	now      func() time.Time
}

func NewDashboardService(store ports.DashboardStore, identity ports.IdentityProvider, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		store:    store,
		identity: identity,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used to stamp createdAt/updatedAt.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// stamp is the clock reading at the millisecond precision every store keeps,
// so a record returned from a write equals the same record read back.
func (s *DashboardService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ListAll returns the caller's dashboards, newest first.
func (s *DashboardService) ListAll(ctx context.Context) ([]*domain.Dashboard, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, ports.DashboardFilter{UserID: user.ID})
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "fetch dashboards", Err: err}
	}
	return items, nil
}

// GetByID fetches one dashboard owned by the caller.
func (s *DashboardService) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.store.FindByID(ctx, id, ownerScope(user))
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "fetch dashboard", Err: err}
	}
	return d, nil
}

// Create stores a new dashboard for the caller with url and icon defaulted.
func (s *DashboardService) Create(ctx context.Context, draft domain.DashboardDraft) (*domain.Dashboard, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	draft, err = draft.Normalize()
	if err != nil {
		return nil, err
	}

	now := s.stamp()
	created, err := s.store.Insert(ctx, &domain.Dashboard{
		UserID:    user.ID,
		Name:      draft.Name,
		URL:       draft.URL,
		Icon:      draft.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "create dashboard", Err: err}
	}

	s.logger.Debug().Str("user_id", user.ID).Str("dashboard_id", created.ID).Msg("dashboard created")
	return created, nil
}

// Update applies the provided fields and always refreshes updatedAt.
func (s *DashboardService) Update(ctx context.Context, id string, patch domain.DashboardPatch) (*domain.Dashboard, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	patch, err = patch.Normalize()
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, ownerScope(user), patch, s.stamp())
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "update dashboard", Err: err}
	}
	return updated, nil
}

// Delete removes a dashboard owned by the caller. Deleting a missing id
// reports ErrDashboardNotFound inside a RemoteStoreError.
func (s *DashboardService) Delete(ctx context.Context, id string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, ownerScope(user)); err != nil {
		return &domain.RemoteStoreError{Op: "delete dashboard", Err: err}
	}

	s.logger.Debug().Str("user_id", user.ID).Str("dashboard_id", id).Msg("dashboard deleted")
	return nil
}

// Search matches names case-insensitively among the caller's dashboards.
// The query is used verbatim, so whitespace is significant. An empty query
// behaves like ListAll.
func (s *DashboardService) Search(ctx context.Context, query string) ([]*domain.Dashboard, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, ports.DashboardFilter{
		UserID:       user.ID,
		NameContains: query,
	})
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "search dashboards", Err: err}
	}
	return items, nil
}

// Count returns how many dashboards the caller owns.
func (s *DashboardService) Count(ctx context.Context) (int64, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return 0, err
	}

	n, err := s.store.Count(ctx, ports.DashboardFilter{UserID: user.ID})
	if err != nil {
		return 0, &domain.RemoteStoreError{Op: "get dashboards count", Err: err}
	}
	return n, nil
}

// CountAll returns the number of dashboards across every user. Admin only.
func (s *DashboardService) CountAll(ctx context.Context) (int64, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return 0, err
	}
	if !user.IsAdmin() {
		return 0, domain.ErrForbidden
	}

	n, err := s.store.Count(ctx, ports.DashboardFilter{})
	if err != nil {
		return 0, &domain.RemoteStoreError{Op: "get dashboards count", Err: err}
	}
	return n, nil
}

func (s *DashboardService) requireUser(ctx context.Context) (*domain.User, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationRequired) {
			return nil, err
		}
		s.logger.Warn().Err(err).Msg("identity lookup failed")
		return nil, domain.ErrAuthenticationRequired
	}
	if user == nil || user.ID == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	return user, nil
}

// ownerScope returns the owner filter for single-record operations.
func ownerScope(u *domain.User) string {
	if u.IsAdmin() {
		return ""
	}
	return u.ID
}
