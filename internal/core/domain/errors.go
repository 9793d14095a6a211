package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrPlanRequired       = errors.New("pro plan required")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrTokenInvalid       = errors.New("security token invalid")
	ErrTokenExpired       = errors.New("security token expired")
	ErrTimeout            = errors.New("operation timed out")
	ErrContentNotFound    = errors.New("content not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// safeMessages maps sentinel errors to messages that may be shown to an
// end user verbatim. Anything outside this map is replaced with a
// generic message before it leaves the action boundary.
var safeMessages = map[error]string{
	ErrAuthRequired:       "login required",
	ErrPlanRequired:       "a Pro plan is required for this action",
	ErrRateLimited:        "too many requests, please slow down",
	ErrTokenInvalid:       "invalid security token",
	ErrTokenExpired:       "invalid security token",
	ErrTimeout:            "the operation timed out, please try again",
	ErrContentNotFound:    "content not found",
	ErrUserExists:         "an account with this email already exists",
	ErrInvalidCredentials: "invalid email or password",
}

// SafeMessage returns the user-facing message for err when err wraps one
// of the known sentinels. ok is false for everything else.
func SafeMessage(err error) (msg string, ok bool) {
	for sentinel, m := range safeMessages {
		if errors.Is(err, sentinel) {
			return m, true
		}
	}
	return "", false
}

// ValidationError carries per-field validation messages. It is resolved
// at the action boundary and never reaches business logic.
type ValidationError struct {
	Fields map[string][]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
