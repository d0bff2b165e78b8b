package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "throttle:"

// reserveScript increments the window counter, starting the window on the
// first hit, and backs the increment out again when the limit is exceeded.
// Returns {allowed(0|1), count, pttl}.
var reserveScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if n > tonumber(ARGV[2]) then
	redis.call('DECR', KEYS[1])
	return {0, n - 1, ttl}
end
return {1, n, ttl}
`)

var releaseScript = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n > 0 then
	return redis.call('DECR', KEYS[1])
end
return 0
`)

// RedisStore is a fixed-window counter per key, shared by every process using the same Redis.
type RedisStore struct {
	client redis.Scripter
	limits Limits
	prefix string
}

// NewRedisStore creates a store on client. scope namespaces keys (e.g. "login").
func NewRedisStore(client redis.Scripter, scope string, limits Limits) *RedisStore {
	return &RedisStore{
		client: client,
		limits: limits.withDefaults(),
		prefix: keyPrefix + scope + ":",
	}
}

// Reserve implements Store
func (s *RedisStore) Reserve(ctx context.Context, key string) (Reservation, error) {
	res, err := reserveScript.Run(ctx, s.client, []string{s.prefix + key},
		s.limits.Window.Milliseconds(), s.limits.MaxAttempts).Int64Slice()
	if err != nil {
		return Reservation{}, fmt.Errorf("throttle reserve %q: %w", key, err)
	}
	if len(res) != 3 {
		return Reservation{}, fmt.Errorf("throttle reserve %q: unexpected reply %v", key, res)
	}

	allowed, count, ttl := res[0] == 1, int(res[1]), time.Duration(res[2])*time.Millisecond
	r := Reservation{Key: key, Limit: s.limits.MaxAttempts, Allowed: allowed}
	if allowed {
		r.Remaining = s.limits.MaxAttempts - count
		return r, nil
	}

	if ttl <= 0 {
		ttl = s.limits.Window
	}
	r.RetryAfter = ttl
	return r, nil
}

// Release implements Store
func (s *RedisStore) Release(ctx context.Context, r Reservation) error {
	if !r.Allowed {
		return nil
	}
	if err := releaseScript.Run(ctx, s.client, []string{s.prefix + r.Key}).Err(); err != nil {
		return fmt.Errorf("throttle release %q: %w", r.Key, err)
	}
	return nil
}
