package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestThrottleBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	throttle := NewLoginThrottle(client, 3, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))
}

func TestThrottleKeysAreIndependent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	throttle := NewLoginThrottle(client, 1, time.Minute, nil)
	ctx := context.Background()

	assert.True(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))
	assert.False(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))
	assert.True(t, throttle.Allow(ctx, "bob@example.com|10.0.0.2"))
}

func TestThrottleWindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	throttle := NewLoginThrottle(client, 1, time.Minute, nil)
	ctx := context.Background()

	assert.True(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))
	assert.False(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))

	mr.FastForward(2 * time.Minute)

	assert.True(t, throttle.Allow(ctx, "alice@example.com|10.0.0.1"))
}

func TestThrottleFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	throttle := NewLoginThrottle(client, 1, time.Minute, nil)
	for i := 0; i < 5; i++ {
		assert.True(t, throttle.Allow(context.Background(), "alice@example.com|10.0.0.1"))
	}
}

func TestThrottleDisabledWithoutClient(t *testing.T) {
	var throttle *LoginThrottle
	assert.True(t, throttle.Allow(context.Background(), "anyone"))

	throttle = NewLoginThrottle(nil, 1, time.Minute, nil)
	assert.True(t, throttle.Allow(context.Background(), "anyone"))
}
