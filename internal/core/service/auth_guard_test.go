package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]domain.Identity
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Identity)}
}

func (s *stubSessionStore) Issue(_ context.Context, identity domain.Identity, _ time.Duration) (string, error) {
	id := "sess-" + identity.UserID
	s.sessions[id] = identity
	return id, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, sessionID string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	identity, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrAuthRequired
	}
	return &identity, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func TestAuthGuard_Require(t *testing.T) {
	sessions := newStubSessionStore()
	guard := NewAuthGuard(sessions)

	sessionID, _ := sessions.Issue(context.Background(), domain.Identity{UserID: "u1", Plan: domain.PlanPro}, time.Hour)

	identity, err := guard.Require(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Require returned error: %v", err)
	}
	if identity.UserID != "u1" || !identity.IsPro() {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthGuard_RequireNoSession(t *testing.T) {
	guard := NewAuthGuard(newStubSessionStore())

	if _, err := guard.Require(context.Background(), ""); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for empty session ID, got %v", err)
	}
	if _, err := guard.Require(context.Background(), "unknown"); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for unknown session, got %v", err)
	}
}

func TestAuthGuard_ProviderErrorNormalised(t *testing.T) {
	sessions := newStubSessionStore()
	sessions.err = errors.New("backend down")
	guard := NewAuthGuard(sessions)

	// Provider failures and missing sessions are indistinguishable to
	// the caller.
	if _, err := guard.Require(context.Background(), "anything"); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for provider error, got %v", err)
	}
}

func TestAuthGuard_TryAndIdentityID(t *testing.T) {
	sessions := newStubSessionStore()
	guard := NewAuthGuard(sessions)

	sessionID, _ := sessions.Issue(context.Background(), domain.Identity{UserID: "u2"}, time.Hour)

	if _, ok := guard.Try(context.Background(), "missing"); ok {
		t.Fatalf("Try should report false for a missing session")
	}
	if identity, ok := guard.Try(context.Background(), sessionID); !ok || identity.UserID != "u2" {
		t.Fatalf("Try returned (%+v, %v)", identity, ok)
	}

	if id, ok := guard.IdentityID(context.Background(), sessionID); !ok || id != "u2" {
		t.Fatalf("IdentityID returned (%q, %v)", id, ok)
	}
	if _, ok := guard.IdentityID(context.Background(), ""); ok {
		t.Fatalf("IdentityID should report false without a session")
	}
}
