package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gym-management-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_BroadcastRespectsTypeFilter(t *testing.T) {
	hub := runHub(t)

	all := NewClient(hub, nil, uuid.New(), "")
	payments := NewClient(hub, nil, uuid.New(), " payment , ")
	hub.register <- all
	hub.register <- payments
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.BroadcastEvent("ATTENDANCE", map[string]string{"action": "CHECK_IN"})
	hub.BroadcastEvent("PAYMENT", map[string]string{"action": "COMPLETE"})

	var frame Envelope
	require.NoError(t, json.Unmarshal(<-all.Send, &frame))
	assert.Equal(t, "ATTENDANCE", frame.Type)
	require.NoError(t, json.Unmarshal(<-all.Send, &frame))
	assert.Equal(t, "PAYMENT", frame.Type)

	require.NoError(t, json.Unmarshal(<-payments.Send, &frame))
	assert.Equal(t, "PAYMENT", frame.Type)
	assert.Empty(t, payments.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := runHub(t)
	client := NewClient(hub, nil, uuid.New(), "")
	hub.register <- client
	hub.unregister <- client
	hub.unregister <- client

	_, open := <-client.Send
	assert.False(t, open)
	assert.Zero(t, hub.ClientCount())
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := runHub(t)
	client := NewClient(hub, nil, uuid.New(), "")
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	for i := 0; i <= sendBuffer; i++ {
		hub.BroadcastEvent("MEMBER", i)
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	connected := NewClient(hub, nil, uuid.New(), "")
	require.True(t, hub.add(connected))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, open := <-connected.Send
	assert.False(t, open, "shutdown closes client feeds")
	assert.Zero(t, hub.ClientCount())

	returned := make(chan bool)
	go func() {
		ok := hub.add(NewClient(hub, nil, uuid.New(), ""))
		hub.remove(connected)
		returned <- ok
	}()
	select {
	case ok := <-returned:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("register after stop blocked")
	}
}
