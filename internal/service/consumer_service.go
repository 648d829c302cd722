// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"gym-management-be/internal/pkg/logger"
	adminEvents "gym-management-be/pkg/admin/events"
	"gym-management-be/pkg/audit"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Broadcaster pushes a typed frame to connected admin sockets.
type Broadcaster interface {
	BroadcastEvent(eventType string, data interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	publisher   adminEvents.Publisher
	broadcaster Broadcaster
	logger      logger.ILogger
}

// NewConsumerService fans audit messages out to NATS and the websocket hub.
// Either sink may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	publisher adminEvents.Publisher,
	broadcaster Broadcaster,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		publisher:   publisher,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload audit.Message
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("CONSUMER", "Dropping undecodable audit message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if cs.publisher != nil {
		cs.publisher.PublishAudit(ctx, payload)
	}
	if cs.broadcaster != nil {
		cs.broadcaster.BroadcastEvent(payload.Type, adminEvents.Payload(payload))
	}

	msg.Ack()
}
