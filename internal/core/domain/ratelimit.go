package domain

import "time"

// RateLimitPolicy bounds how many calls a single (client, action) pair
// may make inside one window. FailOpen controls the decision when the
// backing counter store is unreachable: reads fail open, writes and
// auth-sensitive actions fail closed.
type RateLimitPolicy struct {
	Limit    int
	Window   time.Duration
	FailOpen bool
}

// Named presets per action class.
var (
	PolicyRead      = RateLimitPolicy{Limit: 60, Window: time.Minute, FailOpen: true}
	PolicyWrite     = RateLimitPolicy{Limit: 30, Window: time.Minute, FailOpen: false}
	PolicySensitive = RateLimitPolicy{Limit: 10, Window: 15 * time.Minute, FailOpen: false}
)

// RateLimitDecision is the outcome of a single limit check.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}
