package inference

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable indicates the inference service could not be reached
	// or returned an error status.
	ErrUnavailable = errors.New("inference service unavailable")

	// ErrEmptyGeneration indicates the service responded but produced no
	// usable text.
	ErrEmptyGeneration = errors.New("inference returned no usable text")
)

// Generation is the result of a single completion call.
type Generation struct {
	Text        string
	Theme       string
	GeneratedAt time.Time
}

// Client is a minimal inference interface to allow pluggable providers.
type Client interface {
	// Generate produces a themed quote in a single attempt.
	Generate(ctx context.Context, theme string) (Generation, error)
	// Ping reports whether the service is reachable.
	Ping(ctx context.Context) error
}
