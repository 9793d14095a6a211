// Package ports defines the contracts between the core services and
// their external collaborators.
package ports

import (
	"context"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

// CounterStore is the shared backing store for rate-limit counters.
// Increment atomically bumps the counter for key, starting a new window
// of the given duration when none is active, and returns the count
// after the increment together with the time left in the window.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RateLimiter decides whether a (client, action) pair may proceed.
// Check never fails: when the store is unreachable, the policy's
// fail-open/fail-closed setting decides.
type RateLimiter interface {
	Check(ctx context.Context, clientID, action string, policy domain.RateLimitPolicy) domain.RateLimitDecision
}
