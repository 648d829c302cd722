package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisLoginThrottle_DisabledWithoutRedis(t *testing.T) {
	th := NewRedisLoginThrottle(nil, 1, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		locked, err := th.RegisterFailure(ctx, "member@example.com")
		assert.NoError(t, err)
		assert.False(t, locked)
	}

	locked, err := th.IsLocked(ctx, "member@example.com")
	assert.NoError(t, err)
	assert.False(t, locked)
	th.Reset(ctx, "member@example.com")
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	assert.Equal(t, attemptsKey("A@B.com"), attemptsKey("a@b.COM"))
	assert.Equal(t, "login:lock:a@b.com", lockKey("A@b.com"))
}
