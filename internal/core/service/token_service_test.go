package service

import (
	"errors"
	"testing"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token.Value == "" {
		t.Fatalf("expected non-empty token value")
	}
	if got := token.TTL(); got != time.Hour {
		t.Fatalf("TTL = %v, want %v", got, time.Hour)
	}

	if err := svc.Verify(token.Value, token.Value, ""); err != nil {
		t.Fatalf("Verify failed for fresh anonymous token: %v", err)
	}
}

func TestTokenService_TokensAreUnique(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	a, _ := svc.Generate("")
	b, _ := svc.Generate("")
	if a.Value == b.Value {
		t.Fatalf("two generated tokens must not collide")
	}
}

func TestTokenService_IdentityBinding(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if err := svc.Verify(token.Value, token.Value, "user-42"); err != nil {
		t.Fatalf("Verify failed for the bound identity: %v", err)
	}

	// Matching token string presented by a different identity is rejected.
	if err := svc.Verify(token.Value, token.Value, "user-99"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for identity mismatch, got %v", err)
	}
	if err := svc.Verify(token.Value, token.Value, ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for anonymous verify of bound token, got %v", err)
	}
}

func TestTokenService_CookieMismatch(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, _ := svc.Generate("")
	other, _ := svc.Generate("")

	if err := svc.Verify(token.Value, other.Value, ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for cookie mismatch, got %v", err)
	}
	if err := svc.Verify("", token.Value, ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing submitted token, got %v", err)
	}
	if err := svc.Verify(token.Value, "", ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing cookie, got %v", err)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// Expiry must fail distinctly from a mismatched token.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if err := svc.Verify(token.Value, token.Value, ""); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _ := issuer.Generate("")
	if err := verifier.Verify(token.Value, token.Value, ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for forged signature, got %v", err)
	}
}
