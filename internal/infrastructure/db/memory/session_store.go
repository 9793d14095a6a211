package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type session struct {
	identity  domain.Identity
	expiresAt time.Time
}

// SessionStore is the in-process fallback for server-side sessions.
// Sessions do not survive a restart and are not shared across replicas.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

func (s *SessionStore) Issue(_ context.Context, identity domain.Identity, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	sessionID := hex.EncodeToString(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session{identity: identity, expiresAt: s.now().Add(ttl)}
	return sessionID, nil
}

func (s *SessionStore) Resolve(_ context.Context, sessionID string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || !s.now().Before(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, domain.ErrAuthRequired
	}
	identity := sess.identity
	return &identity, nil
}

func (s *SessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
