package ports

import (
	"context"
	"time"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// DashboardFilter narrows Find and Count.
type DashboardFilter struct {
	UserID       string // empty = every owner (admin count only)
	NameContains string // optional: case-insensitive substring of name
}

// DashboardStore is the remote record store backing the "dashboards" collection.
// Every method is a single round trip. Missing records are reported as
// domain.ErrDashboardNotFound; ownerID scopes the lookup when non-empty.
type DashboardStore interface {
	// Find returns matching records ordered by createdAt, newest first.
	Find(ctx context.Context, filter DashboardFilter) ([]*domain.Dashboard, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Dashboard, error)
	Insert(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error)
	Update(ctx context.Context, id, ownerID string, patch domain.DashboardPatch, updatedAt time.Time) (*domain.Dashboard, error)
	Delete(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context, filter DashboardFilter) (int64, error)
}
