package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps server-side sessions in Redis as JSON records
// under an opaque random ID. Expiry is delegated to the key TTL.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Issue stores the identity under a fresh random session ID.
func (s *SessionStore) Issue(ctx context.Context, identity domain.Identity, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	sessionID := hex.EncodeToString(raw)

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("session payload: %w", err)
	}

	if err := s.client.Set(ctx, sessionPrefix+sessionID, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}
	return sessionID, nil
}

// Resolve loads the identity for sessionID. A missing or expired key
// resolves to domain.ErrAuthRequired.
func (s *SessionStore) Resolve(ctx context.Context, sessionID string) (*domain.Identity, error) {
	payload, err := s.client.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &identity, nil
}

// Revoke deletes the session immediately.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}
