package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/testdb"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_StoresAndPublishes(t *testing.T) {
	db := testdb.New(t)
	factory := unitofwork.NewRepositoryFactory(db)

	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer bus.Close()
	messages, err := bus.Subscribe(context.Background(), "audit.events")
	require.NoError(t, err)

	rec := audit.NewRecorder(factory, bus, "audit.events", logger.NewNopLogger())
	subject := uuid.New()
	rec.RecordEvent(context.Background(), audit.Entry{
		Type:             entity.LogTypeAttendance,
		Action:           constant.ActionCheckIn,
		Description:      "Member checked in",
		SubjectAccountId: &subject,
		Metadata:         map[string]interface{}{"source": "test"},
	})

	count, err := factory.NewUnitOfWork(context.Background()).SystemLogRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	select {
	case msg := <-messages:
		var body audit.Message
		require.NoError(t, json.Unmarshal(msg.Payload, &body))
		assert.Equal(t, entity.LogTypeAttendance, body.Type)
		assert.Equal(t, constant.ActionCheckIn, body.Action)
		assert.Equal(t, subject, *body.SubjectAccountId)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("audit message was not published")
	}
}

func TestRecorder_SwallowsStoreFailure(t *testing.T) {
	db := testdb.New(t)
	factory := unitofwork.NewRepositoryFactory(db)
	require.NoError(t, db.Migrator().DropTable("system_logs"))

	rec := audit.NewRecorder(factory, nil, "audit.events", logger.NewNopLogger())

	assert.NotPanics(t, func() {
		rec.RecordEvent(context.Background(), audit.Entry{
			Type:        entity.LogTypeMember,
			Action:      constant.ActionCreate,
			Description: "should not fail the caller",
		})
	})
}
