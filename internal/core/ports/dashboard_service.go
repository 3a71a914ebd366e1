package ports

import (
	"context"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// DashboardService is the authenticated facade over the dashboard store.
// The caller is resolved from ctx; scoped operations fail with
// domain.ErrAuthenticationRequired before touching the store.
type DashboardService interface {
	ListAll(ctx context.Context) ([]*domain.Dashboard, error)
	GetByID(ctx context.Context, id string) (*domain.Dashboard, error)
	Create(ctx context.Context, draft domain.DashboardDraft) (*domain.Dashboard, error)
	Update(ctx context.Context, id string, patch domain.DashboardPatch) (*domain.Dashboard, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*domain.Dashboard, error)
	Count(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// IdentityProvider resolves the signed-in user for a request. A nil user
// with a nil error means nobody is signed in.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}
