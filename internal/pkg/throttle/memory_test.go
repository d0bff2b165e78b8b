package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMemoryStore(limits Limits) (*MemoryStore, *manualClock) {
	clock := &manualClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(limits)
	s.now = clock.Now
	return s, clock
}

func (s *MemoryStore) keyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestMemoryStore_RejectsAfterLimit(t *testing.T) {
	ctx := context.Background()
	s, clock := newMemoryStore(Limits{MaxAttempts: 5, Window: 15 * time.Minute})

	for i := 0; i < 5; i++ {
		r, err := s.Reserve(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, r.Allowed, "attempt %d", i+1)
		assert.Equal(t, 4-i, r.Remaining)
		clock.Advance(time.Minute)
	}

	r, err := s.Reserve(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, r.Allowed)
	assert.Zero(t, r.Remaining)
	// oldest attempt was 5 minutes ago; it leaves the window in 10 minutes
	assert.Equal(t, 10*time.Minute, r.RetryAfter)

	// a different key is unaffected
	other, err := s.Reserve(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryStore_WindowSlides(t *testing.T) {
	ctx := context.Background()
	s, clock := newMemoryStore(Limits{MaxAttempts: 2, Window: time.Minute})

	_, _ = s.Reserve(ctx, "k")
	clock.Advance(30 * time.Second)
	_, _ = s.Reserve(ctx, "k")

	r, _ := s.Reserve(ctx, "k")
	assert.False(t, r.Allowed)
	assert.Equal(t, 30*time.Second, r.RetryAfter)

	clock.Advance(31 * time.Second)
	r, _ = s.Reserve(ctx, "k")
	assert.True(t, r.Allowed)
}

func TestMemoryStore_ReleaseForgetsAttempt(t *testing.T) {
	ctx := context.Background()
	s, clock := newMemoryStore(Limits{MaxAttempts: 5, Window: 15 * time.Minute})

	// successes are released and never count
	for i := 0; i < 20; i++ {
		r, err := s.Reserve(ctx, "ip")
		require.NoError(t, err)
		require.True(t, r.Allowed)
		require.NoError(t, s.Release(ctx, r))
		clock.Advance(time.Second)
	}
	assert.Zero(t, s.keyCount())

	// five failures then the sixth attempt is refused
	for i := 0; i < 5; i++ {
		r, _ := s.Reserve(ctx, "ip")
		require.True(t, r.Allowed)
	}
	r, _ := s.Reserve(ctx, "ip")
	assert.False(t, r.Allowed)

	// releasing a rejected reservation changes nothing
	require.NoError(t, s.Release(ctx, r))
	r, _ = s.Reserve(ctx, "ip")
	assert.False(t, r.Allowed)
}

func TestMemoryStore_Defaults(t *testing.T) {
	s := NewMemoryStore(Limits{})
	assert.Equal(t, 5, s.limits.MaxAttempts)
	assert.Equal(t, 15*time.Minute, s.limits.Window)
}

func TestMemoryStore_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(Limits{MaxAttempts: 10, Window: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Reserve(ctx, "shared")
			if err == nil && r.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}

func TestMemoryStore_SweepAndRun(t *testing.T) {
	ctx := context.Background()
	s, clock := newMemoryStore(Limits{MaxAttempts: 5, Window: time.Minute})

	_, _ = s.Reserve(ctx, "a")
	_, _ = s.Reserve(ctx, "b")
	assert.Equal(t, 2, s.keyCount())

	clock.Advance(2 * time.Minute)
	s.Sweep()
	assert.Zero(t, s.keyCount())

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		s.Run(runCtx, time.Millisecond)
		close(done)
	}()
	cancel()
	<-done
}
