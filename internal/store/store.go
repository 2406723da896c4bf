package store

import (
	"context"
	"errors"
	"time"
)

var ErrQuoteNotFound = errors.New("quote not found")

// Quote is a persisted generated quote. Rows are immutable once created
// except for deletion.
type Quote struct {
	ID          int64
	Text        string
	GeneratedAt time.Time
	Theme       string
	CreatedAt   time.Time
}

// Store defines the persistence contract; an external DB implementation
// can replace this.
type Store interface {
	// InsertQuote stores a quote and returns its generated id.
	InsertQuote(ctx context.Context, text string, generatedAt time.Time, theme string) (int64, error)
	// ListQuotes returns up to limit quotes, newest first.
	ListQuotes(ctx context.Context, limit int) ([]Quote, error)
	// AllQuotes returns every stored quote, newest first.
	AllQuotes(ctx context.Context) ([]Quote, error)
	// DeleteQuote removes a quote; ErrQuoteNotFound if the id does not exist.
	DeleteQuote(ctx context.Context, id int64) error
	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error
	Close() error
}
