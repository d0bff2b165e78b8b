package throttle

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local sliding-window log of attempt timestamps per key.
type MemoryStore struct {
	mu     sync.Mutex
	events map[string][]time.Time
	limits Limits
	now    func() time.Time
}

// NewMemoryStore creates an in-process store
func NewMemoryStore(limits Limits) *MemoryStore {
	return &MemoryStore{
		events: make(map[string][]time.Time),
		limits: limits.withDefaults(),
		now:    time.Now,
	}
}

// Reserve implements Store
func (s *MemoryStore) Reserve(_ context.Context, key string) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	events := s.prune(key, now)

	r := Reservation{Key: key, Limit: s.limits.MaxAttempts}
	if len(events) >= s.limits.MaxAttempts {
		r.RetryAfter = events[0].Add(s.limits.Window).Sub(now)
		return r, nil
	}

	s.events[key] = append(events, now)
	r.Allowed = true
	r.Remaining = s.limits.MaxAttempts - len(events) - 1
	r.at = now
	return r, nil
}

// Release implements Store
func (s *MemoryStore) Release(_ context.Context, r Reservation) error {
	if !r.Allowed {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.events[r.Key]
	for i, t := range events {
		if t.Equal(r.at) {
			events = append(events[:i], events[i+1:]...)
			break
		}
	}
	if len(events) == 0 {
		delete(s.events, r.Key)
	} else {
		s.events[r.Key] = events
	}
	return nil
}

// prune drops timestamps outside the window. Caller holds mu.
func (s *MemoryStore) prune(key string, now time.Time) []time.Time {
	cut := now.Add(-s.limits.Window)
	events := s.events[key]
	dst := events[:0]
	for _, t := range events {
		if t.After(cut) {
			dst = append(dst, t)
		}
	}
	if len(dst) == 0 {
		delete(s.events, key)
		return nil
	}
	s.events[key] = dst
	return dst
}

// Sweep removes keys whose attempts have all left the window
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key := range s.events {
		s.prune(key, now)
	}
}

// Run sweeps every interval until ctx is done
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
