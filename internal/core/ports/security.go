package ports

import "github.com/codecoach-ai/codecoach-api/internal/core/domain"

// TokenService issues and verifies opaque double-submit tokens.
type TokenService interface {
	// Generate mints a new token, bound to identity when non-empty.
	Generate(identity string) (*domain.SecurityToken, error)
	// Verify checks the double-submit pair. It returns nil on success,
	// domain.ErrTokenExpired for an out-of-date token, and
	// domain.ErrTokenInvalid for every other failure (missing value,
	// cookie mismatch, bad signature, identity mismatch).
	Verify(submitted, cookie, identity string) error
}
