package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/entity"
	adminEvents "gym-management-be/pkg/admin/events"
	"gym-management-be/pkg/audit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	eventType string
	data      interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	frames []frame
}

func (r *recordingBroadcaster) BroadcastEvent(eventType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame{eventType, data})
}

func (r *recordingBroadcaster) snapshot() []frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]frame(nil), r.frames...)
}

func TestConsumer_FansAuditOutToSockets(t *testing.T) {
	f := newFixture(t)
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	sockets := &recordingBroadcaster{}
	consumer := NewConsumerService(bus, "audit.events", adminEvents.NewNatsPublisher(nil, f.log), sockets, f.log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, bus.Publish("audit.events", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	recorder := audit.NewRecorder(f.factory, bus, "audit.events", f.log)
	subject := uuid.New()
	recorder.RecordEvent(f.ctx, audit.Entry{
		Type:             entity.LogTypeAttendance,
		Action:           constant.ActionCheckIn,
		Description:      "Member checked in",
		SubjectAccountId: &subject,
	})

	require.Eventually(t, func() bool { return len(sockets.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)

	got := sockets.snapshot()[0]
	assert.Equal(t, entity.LogTypeAttendance, got.eventType)
	data, ok := got.data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, constant.ActionCheckIn, data["action"])
	assert.Equal(t, "Member checked in", data["description"])
}
