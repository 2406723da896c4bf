package cache

import (
	"context"
	"fmt"
	"time"

	"quote-api/internal/store"
)

// Cache provides read-side caching of quote listings. Entries are
// invalidated wholesale on every insert or delete, so a cache can never
// serve a deleted quote past its TTL.
type Cache interface {
	// GetQuotes retrieves a cached listing by key. Returns nil on miss.
	GetQuotes(ctx context.Context, key string) ([]store.Quote, error)

	// SetQuotes stores a listing with TTL.
	SetQuotes(ctx context.Context, key string, quotes []store.Quote, ttl time.Duration) error

	// Invalidate removes all cached listings.
	Invalidate(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// ExportKey caches the full-table listing used by the export endpoints.
const ExportKey = "quotes:all"

// ListKey returns the cache key for a limited listing.
func ListKey(limit int) string {
	return fmt.Sprintf("quotes:list:%d", limit)
}
