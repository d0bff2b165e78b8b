package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, limits Limits) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "login", limits), mr
}

func TestRedisStore_RejectsAfterLimit(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, Limits{MaxAttempts: 5, Window: 15 * time.Minute})

	for i := 0; i < 5; i++ {
		r, err := s.Reserve(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, r.Allowed, "attempt %d", i+1)
		assert.Equal(t, 4-i, r.Remaining)
	}

	r, err := s.Reserve(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, r.Allowed)
	assert.Greater(t, r.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, r.RetryAfter, 15*time.Minute)

	// rejected attempts are backed out of the counter
	v, err := mr.Get("throttle:login:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "5", v)
}

func TestRedisStore_WindowExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, Limits{MaxAttempts: 1, Window: time.Minute})

	r, err := s.Reserve(ctx, "k")
	require.NoError(t, err)
	require.True(t, r.Allowed)

	r, err = s.Reserve(ctx, "k")
	require.NoError(t, err)
	require.False(t, r.Allowed)

	mr.FastForward(61 * time.Second)

	r, err = s.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
}

func TestRedisStore_Release(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, Limits{MaxAttempts: 5, Window: 15 * time.Minute})

	for i := 0; i < 10; i++ {
		r, err := s.Reserve(ctx, "ip")
		require.NoError(t, err)
		require.True(t, r.Allowed)
		require.NoError(t, s.Release(ctx, r))
	}

	v, err := mr.Get("throttle:login:ip")
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	// releasing a rejected reservation is a no-op
	require.NoError(t, s.Release(ctx, Reservation{Key: "ip"}))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	s, mr := newRedisStore(t, Limits{})
	mr.Close()

	_, err := s.Reserve(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttle reserve")
}
