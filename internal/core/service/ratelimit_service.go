package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// RateLimitService enforces fixed-window limits per (client, action)
// pair on top of an atomic counter store.
type RateLimitService struct {
	store ports.CounterStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewRateLimitService(store ports.CounterStore, log zerolog.Logger) *RateLimitService {
	return &RateLimitService{store: store, log: log, now: time.Now}
}

// Check increments the counter for the key and decides. The increment
// happens even for calls that end up denied, so a burst of concurrent
// checks cannot race past the limit. Check never returns an error: a
// failing store resolves to the policy's fail-open/fail-closed choice.
func (s *RateLimitService) Check(ctx context.Context, clientID, action string, policy domain.RateLimitPolicy) domain.RateLimitDecision {
	key := counterKey(clientID, action)

	count, ttl, err := s.store.Increment(ctx, key, policy.Window)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("action", action).
			Bool("fail_open", policy.FailOpen).
			Msg("rate limit store unavailable")
		return domain.RateLimitDecision{
			Allowed: policy.FailOpen,
			ResetAt: s.now().Add(policy.Window),
		}
	}
	if ttl <= 0 {
		ttl = policy.Window
	}

	remaining := policy.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return domain.RateLimitDecision{
		Allowed:   count <= int64(policy.Limit),
		Remaining: remaining,
		ResetAt:   s.now().Add(ttl),
	}
}

func counterKey(clientID, action string) string {
	return fmt.Sprintf("ratelimit:%s:%s", action, clientID)
}
