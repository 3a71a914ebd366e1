package ports

import (
	"context"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpsertByEmail creates the user or refreshes name/provider of an existing one.
	UpsertByEmail(ctx context.Context, user *domain.User) (*domain.User, error)
}
