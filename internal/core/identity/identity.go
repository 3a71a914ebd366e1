// Package identity carries the signed-in user through a request context.
package identity

import (
	"context"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u. A nil u marks the request as anonymous.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user stored by WithUser, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*domain.User)
	return u, ok && u != nil
}

// ContextProvider resolves the current user from the request context.
type ContextProvider struct{}

func NewContextProvider() ContextProvider { return ContextProvider{} }

func (ContextProvider) CurrentUser(ctx context.Context) (*domain.User, error) {
	u, _ := UserFromContext(ctx)
	return u, nil
}
