package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// LayoutStore keeps one serialized workspace layout per user.
// Key format: layout:<user_id>
type LayoutStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLayoutStore creates a LayoutStore. A zero ttl keeps layouts forever.
func NewLayoutStore(client *redis.Client, ttl time.Duration) *LayoutStore {
	return &LayoutStore{client: client, ttl: ttl}
}

func (s *LayoutStore) Get(ctx context.Context, userID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrLayoutNotFound
		}
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return raw, nil
}

func (s *LayoutStore) Put(ctx context.Context, userID string, raw []byte) error {
	if err := s.client.Set(ctx, s.key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (s *LayoutStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

func (s *LayoutStore) key(userID string) string {
	return "layout:" + userID
}
