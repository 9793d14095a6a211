package service

import (
	"context"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// AuthGuard resolves the current request's authenticated identity.
// Its only job is to normalise "no session" and "provider error" into
// the single domain.ErrAuthRequired signal and to shape the success
// payload consistently for callers.
type AuthGuard struct {
	sessions ports.SessionStore
}

func NewAuthGuard(sessions ports.SessionStore) *AuthGuard {
	return &AuthGuard{sessions: sessions}
}

// Require resolves the identity for sessionID or fails with
// domain.ErrAuthRequired. Absence is always an explicit failure, never
// a zero identity silently handed to business logic.
func (g *AuthGuard) Require(ctx context.Context, sessionID string) (domain.Identity, error) {
	if sessionID == "" {
		return domain.Identity{}, domain.ErrAuthRequired
	}
	identity, err := g.sessions.Resolve(ctx, sessionID)
	if err != nil || identity == nil {
		return domain.Identity{}, domain.ErrAuthRequired
	}
	return *identity, nil
}

// Try is the non-failing variant of Require.
func (g *AuthGuard) Try(ctx context.Context, sessionID string) (domain.Identity, bool) {
	identity, err := g.Require(ctx, sessionID)
	return identity, err == nil
}

// IdentityID projects just the user ID out of the resolved identity.
func (g *AuthGuard) IdentityID(ctx context.Context, sessionID string) (string, bool) {
	identity, ok := g.Try(ctx, sessionID)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
