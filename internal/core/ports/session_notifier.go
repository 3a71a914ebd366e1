package ports

import (
	"context"
	"time"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// Subscription is released by calling Unsubscribe exactly once.
type Subscription interface {
	Unsubscribe()
}

// SessionNotifier fans session changes out to interested listeners.
type SessionNotifier interface {
	Publish(ctx context.Context, ev domain.SessionEvent) error
	// OnSessionChange invokes fn for every event concerning userID until
	// the subscription is released or ctx is cancelled.
	OnSessionChange(ctx context.Context, userID string, fn func(domain.SessionEvent)) (Subscription, error)
}

// TokenRevoker remembers signed-out tokens until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
