package throttle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per identity and locks it out after too many.
type LoginThrottle interface {
	IsLocked(ctx context.Context, identity string) (bool, error)
	RegisterFailure(ctx context.Context, identity string) (locked bool, err error)
	Reset(ctx context.Context, identity string)
}

type RedisLoginThrottle struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
	lockout     time.Duration
}

// NewRedisLoginThrottle returns a throttle that allows everything when rdb is nil.
func NewRedisLoginThrottle(rdb *redis.Client, maxAttempts int64, lockout time.Duration) *RedisLoginThrottle {
	return &RedisLoginThrottle{
		rdb:         rdb,
		maxAttempts: maxAttempts,
		window:      lockout,
		lockout:     lockout,
	}
}

func attemptsKey(identity string) string {
	return "login:attempts:" + strings.ToLower(identity)
}

func lockKey(identity string) string {
	return "login:lock:" + strings.ToLower(identity)
}

func (t *RedisLoginThrottle) IsLocked(ctx context.Context, identity string) (bool, error) {
	if t.rdb == nil {
		return false, nil
	}
	_, err := t.rdb.Get(ctx, lockKey(identity)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *RedisLoginThrottle) RegisterFailure(ctx context.Context, identity string) (bool, error) {
	if t.rdb == nil {
		return false, nil
	}

	pipe := t.rdb.Pipeline()
	incr := pipe.Incr(ctx, attemptsKey(identity))
	pipe.Expire(ctx, attemptsKey(identity), t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if incr.Val() < t.maxAttempts {
		return false, nil
	}
	if err := t.rdb.Set(ctx, lockKey(identity), "1", t.lockout).Err(); err != nil {
		return false, err
	}
	t.rdb.Del(ctx, attemptsKey(identity))
	return true, nil
}

func (t *RedisLoginThrottle) Reset(ctx context.Context, identity string) {
	if t.rdb == nil {
		return
	}
	_ = t.rdb.Del(ctx, attemptsKey(identity)).Err()
}
