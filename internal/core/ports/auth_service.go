package ports

import (
	"context"
	"time"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// TokenClaims is the decoded identity carried by an access token.
type TokenClaims struct {
	TokenID   string
	Subject   string
	Username  string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, password, email, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	SignInWithProvider(ctx context.Context, profile domain.ProviderProfile) (string, *domain.User, error)
	SignOut(ctx context.Context, claims TokenClaims) error
	Me(ctx context.Context) (*domain.User, error)
}
