package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NewNATS constructs a thin NATS-based publisher. Subjects are
// "quotes.<type>", one per event type.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, ev Event) error {
	if ev.Type == "" {
		return errors.New("event type required")
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish("quotes."+string(ev.Type), body)
}

func (p *natsPublisher) Close() {
	p.nc.Close()
}
