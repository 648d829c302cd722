package audit

import (
	"context"
	"encoding/json"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Entry is one audit record as callers describe it.
type Entry struct {
	Type             string
	Action           string
	Description      string
	SubjectAccountId *uuid.UUID
	ActorAccountId   *uuid.UUID
	Metadata         map[string]interface{}
}

// Message is the JSON body published on the event bus after a successful insert.
type Message struct {
	Id               uuid.UUID              `json:"id"`
	Type             string                 `json:"type"`
	Action           string                 `json:"action"`
	Description      string                 `json:"description"`
	SubjectAccountId *uuid.UUID             `json:"subject_account_id,omitempty"`
	ActorAccountId   *uuid.UUID             `json:"actor_account_id,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// Recorder appends audit entries. RecordEvent never fails the caller.
type Recorder interface {
	RecordEvent(ctx context.Context, entry Entry)
}

type recorder struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  message.Publisher
	topic      string
	logger     logger.ILogger
}

// NewRecorder wires the store and an optional publisher; a nil publisher only stores.
func NewRecorder(uowFactory unitofwork.RepositoryFactory, publisher message.Publisher, topic string, log logger.ILogger) Recorder {
	return &recorder{
		uowFactory: uowFactory,
		publisher:  publisher,
		topic:      topic,
		logger:     log,
	}
}

func (r *recorder) RecordEvent(ctx context.Context, entry Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("AUDIT", "Panic while recording audit entry", map[string]interface{}{
				"type":   entry.Type,
				"action": entry.Action,
				"panic":  rec,
			})
		}
	}()

	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	log := &entity.SystemLog{
		Type:             entry.Type,
		Action:           entry.Action,
		Description:      entry.Description,
		SubjectAccountId: entry.SubjectAccountId,
		ActorAccountId:   entry.ActorAccountId,
		Metadata:         metadata,
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Create(ctx, log); err != nil {
		r.logger.Error("AUDIT", "Failed to store audit entry", map[string]interface{}{
			"type":   entry.Type,
			"action": entry.Action,
			"error":  err.Error(),
		})
		return
	}

	r.publish(log)
}

func (r *recorder) publish(log *entity.SystemLog) {
	if r.publisher == nil {
		return
	}

	payload, err := json.Marshal(Message{
		Id:               log.Id,
		Type:             log.Type,
		Action:           log.Action,
		Description:      log.Description,
		SubjectAccountId: log.SubjectAccountId,
		ActorAccountId:   log.ActorAccountId,
		Metadata:         log.Metadata,
		CreatedAt:        log.CreatedAt,
	})
	if err != nil {
		r.logger.Warn("AUDIT", "Failed to encode audit message", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.publisher.Publish(r.topic, msg); err != nil {
		r.logger.Warn("AUDIT", "Failed to publish audit message", map[string]interface{}{
			"topic": r.topic,
			"error": err.Error(),
		})
	}
}

// AccountRef is a helper for optional account references.
func AccountRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
