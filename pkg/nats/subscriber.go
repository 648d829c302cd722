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

// EventHandler processes one decoded event. A returned error redelivers it.
type EventHandler func(ctx context.Context, event events.Envelope) error

const (
	maxDeliver   = 5
	redeliverGap = 5 * time.Second
)

type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := dial(url, "gym-events-tail")
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe attaches a durable consumer filtered to logType (all types when
// empty). Delivery stops when ctx is cancelled.
func (s *Subscriber) Subscribe(ctx context.Context, logType, durable string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, events.StreamName, jetstream.ConsumerConfig{
		Durable:       durable,
		FilterSubject: events.Subject(logType),
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    maxDeliver,
	})
	if err != nil {
		return fmt.Errorf("create consumer %s: %w", durable, err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		env, err := events.Decode(msg.Data())
		if err != nil {
			log.Printf("Dropping undecodable event on %s: %v", msg.Subject(), err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, env); err != nil {
			log.Printf("Handler failed for event %s: %v", env.Id, err)
			_ = msg.NakWithDelay(redeliverGap)
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", durable, err)
	}

	go func() {
		<-ctx.Done()
		cc.Stop()
	}()
	return nil
}

func (s *Subscriber) Close() {
	if s != nil && s.nc != nil {
		s.nc.Close()
	}
}
