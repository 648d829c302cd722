package nats

import (
	"context"
	"fmt"
	"log"
	"time"

	"gym-management-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher appends audit events to the GYM_AUDIT stream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, js, err := dial(url, "gym-management-be")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ensureStream(ctx, js); err != nil {
		// Another instance may own the stream with different limits
		log.Printf("Warn: failed to ensure stream %s: %v", events.StreamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// Publish writes the event under gym.audit.<type>. The event id doubles as the
// JetStream message id, so a retried publish is stored once.
// A nil publisher drops the event.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if p == nil || p.js == nil {
		return nil
	}
	data, err := events.Encode(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.EventID(), err)
	}

	subject := events.Subject(event.EventType())
	opts := []jetstream.PublishOpt{}
	if id := event.EventID(); id != "" {
		opts = append(opts, jetstream.WithMsgID(id))
	}

	if _, err := p.js.Publish(ctx, subject, data, opts...); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}
