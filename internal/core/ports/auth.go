package ports

import (
	"context"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

// UserRepository persists registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionStore owns server-side sessions. Session IDs are opaque to
// every caller; Resolve returns domain.ErrAuthRequired when the session
// does not exist or has expired.
type SessionStore interface {
	Issue(ctx context.Context, identity domain.Identity, ttl time.Duration) (sessionID string, err error)
	Resolve(ctx context.Context, sessionID string) (*domain.Identity, error)
	Revoke(ctx context.Context, sessionID string) error
}

// AuthService implements registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (sessionID string, user *domain.User, err error)
	Logout(ctx context.Context, sessionID string) error
}
