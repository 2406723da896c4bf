package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent(TypeCreated, 42, "courage")

	if ev.ID == uuid.Nil {
		t.Error("expected non-nil event id")
	}
	if ev.Type != TypeCreated {
		t.Errorf("got type %q, want %q", ev.Type, TypeCreated)
	}
	if ev.QuoteID != 42 {
		t.Errorf("got quote id %d, want 42", ev.QuoteID)
	}
	if ev.At.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestPublishWithRetrySucceedsAfterFailures(t *testing.T) {
	p := new(MockPublisher)
	ev := NewEvent(TypeDeleted, 7, "")

	p.On("Publish", mock.Anything, ev).Return(errors.New("broker down")).Twice()
	p.On("Publish", mock.Anything, ev).Return(nil).Once()

	err := PublishWithRetry(context.Background(), p, ev, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	p.AssertExpectations(t)
}

func TestPublishWithRetryExhaustsAttempts(t *testing.T) {
	p := new(MockPublisher)
	ev := NewEvent(TypeCreated, 7, "hope")

	p.On("Publish", mock.Anything, ev).Return(errors.New("broker down")).Times(3)

	err := PublishWithRetry(context.Background(), p, ev, 3, time.Millisecond)
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	p.AssertExpectations(t)
}

func TestNoOpPublisher(t *testing.T) {
	p := NewNoOpPublisher()
	if err := p.Publish(context.Background(), NewEvent(TypeCreated, 1, "hope")); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	p.Close()
}
