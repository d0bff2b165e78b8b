// Package throttle limits how often a key (usually a client address) may attempt an action.
package throttle

import (
	"context"
	"time"
)

// Reservation is the outcome of one attempt against a Store
type Reservation struct {
	Key        string
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when Allowed

	at time.Time // recorded attempt, used by Release
}

// Store records attempts per key. Implementations must be safe for concurrent use.
type Store interface {
	// Reserve records an attempt for key unless the key is already at its limit.
	// A rejected attempt is not recorded.
	Reserve(ctx context.Context, key string) (Reservation, error)
	// Release forgets an attempt recorded by Reserve. Releasing a rejected
	// reservation is a no-op.
	Release(ctx context.Context, r Reservation) error
}

// Limits configures a Store
type Limits struct {
	MaxAttempts int
	Window      time.Duration
}

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

func (l Limits) withDefaults() Limits {
	if l.MaxAttempts <= 0 {
		l.MaxAttempts = defaultMaxAttempts
	}
	if l.Window <= 0 {
		l.Window = defaultWindow
	}
	return l
}
