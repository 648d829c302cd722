package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// StreamName is the JetStream stream holding every audit event.
	StreamName    = "GYM_AUDIT"
	SubjectPrefix = "gym.audit"
)

// Event is anything that can be put on the audit stream.
type Event interface {
	EventID() string
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Envelope is the wire form of an event.
type Envelope struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func (e Envelope) EventID() string                 { return e.Id }
func (e Envelope) EventType() string               { return e.Type }
func (e Envelope) Payload() map[string]interface{} { return e.Data }
func (e Envelope) Timestamp() time.Time            { return e.OccurredAt }

// Wrap copies any Event into an Envelope.
func Wrap(evt Event) Envelope {
	return Envelope{
		Id:         evt.EventID(),
		Type:       evt.EventType(),
		OccurredAt: evt.Timestamp().UTC(),
		Data:       evt.Payload(),
	}
}

func Encode(evt Event) ([]byte, error) {
	return json.Marshal(Wrap(evt))
}

func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode event: missing type")
	}
	return env, nil
}

// Subject maps a log type such as ATTENDANCE to gym.audit.attendance.
// An empty type yields the wildcard covering the whole stream.
func Subject(logType string) string {
	if logType == "" {
		return SubjectPrefix + ".>"
	}
	return SubjectPrefix + "." + strings.ToLower(logType)
}
