package events

import "context"

// NoOpPublisher discards all events. Used when no broker is configured.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

func (p *NoOpPublisher) Publish(ctx context.Context, ev Event) error {
	return nil
}

func (p *NoOpPublisher) Close() {}
