package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Unlimited disables admission control entirely; Admit never touches the
// window map.
const Unlimited = -1

// RateLimitError reports a rejected request with the retry-after hint.
type RateLimitError struct {
	Identity   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("identity %s reached request limit, try again in %s", e.Identity, e.RetryAfter)
}

// Limiter is a sliding-window admission controller keyed by identity. The
// window map is the only shared mutable state in the service; a single mutex
// serializes the prune-check-append sequence so two concurrent requests for
// the same identity cannot both claim the last slot.
type Limiter struct {
	limit  int
	period time.Duration

	mu      sync.Mutex
	windows map[string][]time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewLimiter(limit int, period time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		period:  period,
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Admit records the request and returns nil when the identity is within its
// window, or a RateLimitError when the limit is reached. Entries older than
// the trailing period are pruned lazily on each call; there is no background
// sweeper. State lives in memory only and resets on restart.
func (l *Limiter) Admit(identity string) error {
	if l.limit == Unlimited {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.period)

	window := l.windows[identity]
	kept := window[:0]
	for _, ts := range window {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.windows[identity] = kept
		return &RateLimitError{Identity: identity, RetryAfter: l.period}
	}

	l.windows[identity] = append(kept, now)
	return nil
}

// RetryAfterSeconds is the hint surfaced in the Retry-After header.
func (l *Limiter) RetryAfterSeconds() int {
	return int(l.period / time.Second)
}
