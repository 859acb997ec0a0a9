// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// Operation classes with a configured window policy.
const (
	OpCreateBattle = "createBattle"
	OpVote         = "vote"
	OpListBattles  = "listBattles"
	OpGetBattle    = "getBattle"
)

// Policy is a request budget for one operation class.
type Policy struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultPolicies are the per-minute budgets for each operation class.
// These are policy constants, not part of the algorithm.
var DefaultPolicies = map[string]Policy{
	OpCreateBattle: {MaxRequests: 5, Window: time.Minute},
	OpVote:         {MaxRequests: 10, Window: time.Minute},
	OpListBattles:  {MaxRequests: 30, Window: time.Minute},
	OpGetBattle:    {MaxRequests: 60, Window: time.Minute},
}

// RateLimitError reports a rejected request and how long the client should
// wait before retrying.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, try again in %d seconds", e.RetryAfterSeconds())
}

// RetryAfterSeconds rounds the wait up to whole seconds for the Retry-After
// header and error details.
func (e *RateLimitError) RetryAfterSeconds() int {
	return int(math.Ceil(e.RetryAfter.Seconds()))
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key in fixed windows. Windows reset lazily on
// the first check after expiry; a periodic sweep evicts stale keys to bound
// memory but is not required for correctness.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	policies map[string]Policy
	now      func() time.Time
}

// NewLimiter creates a limiter with the given policies (DefaultPolicies when
// nil).
func NewLimiter(policies map[string]Policy) *Limiter {
	if policies == nil {
		policies = DefaultPolicies
	}
	return &Limiter{
		windows:  make(map[string]*window),
		policies: policies,
		now:      time.Now,
	}
}

// Check records one request against key and reports whether it is admitted.
// The first request in a window sets count=1; requests under max increment;
// requests at max are rejected with the time remaining until reset.
func (l *Limiter) Check(key string, maxRequests int, windowDur time.Duration) (allowed bool, retryAfter time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) || now.Equal(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(windowDur)}
		return true, 0
	}

	if w.count < maxRequests {
		w.count++
		return true, 0
	}

	return false, w.resetAt.Sub(now)
}

// Enforce admits one request for the operation class keyed by clientKey,
// returning a *RateLimitError when the budget is exhausted. Unknown
// operation classes are admitted; misconfiguration should not take the API
// down.
func (l *Limiter) Enforce(op, clientKey string) error {
	policy, ok := l.policies[op]
	if !ok {
		slog.Warn("no rate limit policy for operation", "op", op)
		return nil
	}

	allowed, retryAfter := l.Check(op+":"+clientKey, policy.MaxRequests, policy.Window)
	if !allowed {
		return &RateLimitError{RetryAfter: retryAfter}
	}
	return nil
}

// Keys returns the number of live windows, expired or not.
func (l *Limiter) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Sweep removes expired windows and returns how many were evicted.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until stop is closed. Housekeeping
// only; correctness never depends on it.
func (l *Limiter) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := l.Sweep(); removed > 0 {
					slog.Info("rate limit sweep", "removed", removed, "remaining", l.Keys())
				}
			case <-stop:
				return
			}
		}
	}()
}
