package events

import (
	"context"

	"gym-management-be/internal/pkg/logger"
	"gym-management-be/pkg/audit"
	pkgEvents "gym-management-be/pkg/events"
	pktNats "gym-management-be/pkg/nats"
)

// Publisher forwards audit entries to the durable event stream.
type Publisher interface {
	PublishAudit(ctx context.Context, msg audit.Message)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishAudit emits gym.audit.<type> with the entry as payload.
func (p *NatsPublisher) PublishAudit(ctx context.Context, msg audit.Message) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.Envelope{
		Id:         msg.Id.String(),
		Type:       msg.Type,
		OccurredAt: msg.CreatedAt,
		Data:       Payload(msg),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish audit event", map[string]interface{}{
			"type":  msg.Type,
			"id":    msg.Id.String(),
			"error": err.Error(),
		})
	}
}

// Payload flattens an audit message into the event data map.
func Payload(msg audit.Message) map[string]interface{} {
	data := map[string]interface{}{
		"id":          msg.Id.String(),
		"type":        msg.Type,
		"action":      msg.Action,
		"description": msg.Description,
		"occurred_at": msg.CreatedAt,
	}
	if msg.SubjectAccountId != nil {
		data["subject_account_id"] = msg.SubjectAccountId.String()
	}
	if msg.ActorAccountId != nil {
		data["actor_account_id"] = msg.ActorAccountId.String()
	}
	if len(msg.Metadata) > 0 {
		data["metadata"] = msg.Metadata
	}
	return data
}
