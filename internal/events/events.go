package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quote-api/internal/retry"
)

// Type enumerates quote lifecycle events.
type Type string

const (
	TypeCreated Type = "created"
	TypeDeleted Type = "deleted"
)

// Event describes a change to the quotes table. Published after the row
// change commits; consumers must tolerate duplicates.
type Event struct {
	ID      uuid.UUID `json:"id"`
	Type    Type      `json:"type"`
	QuoteID int64     `json:"quote_id"`
	Theme   string    `json:"theme,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher exposes a minimal contract to emit quote change events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(t Type, quoteID int64, theme string) Event {
	return Event{
		ID:      uuid.New(),
		Type:    t,
		QuoteID: quoteID,
		Theme:   theme,
		At:      time.Now(),
	}
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, ev Event, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := p.Publish(ctx, ev); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return nil
}
