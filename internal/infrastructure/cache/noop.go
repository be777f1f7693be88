package cache

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/ports/outbound"
)

// NoopCache satisfies outbound.CacheRepository without storing anything.
// It is used when Redis is disabled; every Get is a miss.
type NoopCache struct{}

// NewNoopCache creates a no-op cache.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, key string) error { return nil }

var _ outbound.CacheRepository = (*NoopCache)(nil)
