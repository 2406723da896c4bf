package cache

import (
	"context"
	"time"

	"quote-api/internal/store"
)

// NoOpCache is a cache implementation that does nothing. Used when no
// cache is configured or Redis is unavailable; every read is a miss and
// every write succeeds.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetQuotes(ctx context.Context, key string) ([]store.Quote, error) {
	return nil, nil
}

func (c *NoOpCache) SetQuotes(ctx context.Context, key string, quotes []store.Quote, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Invalidate(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
