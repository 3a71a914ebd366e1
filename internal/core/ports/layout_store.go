package ports

import (
	"context"

	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

// LayoutStore persists one serialized workspace layout per user.
type LayoutStore interface {
	// Get returns domain.ErrLayoutNotFound when the user never saved a layout.
	Get(ctx context.Context, userID string) ([]byte, error)
	Put(ctx context.Context, userID string, raw []byte) error
	Delete(ctx context.Context, userID string) error
}

type WorkspaceService interface {
	Layout(ctx context.Context) (*workspace.Model, error)
	SaveLayout(ctx context.Context, m *workspace.Model) error
	ResetLayout(ctx context.Context) (*workspace.Model, error)
	NewTab(ctx context.Context, component, label string) (workspace.Node, error)
	Palette() []workspace.PaletteItem
}
