package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type stubTokenService struct {
	token    *domain.SecurityToken
	identity string
}

func (s *stubTokenService) Generate(identity string) (*domain.SecurityToken, error) {
	s.identity = identity
	return s.token, nil
}

func (s *stubTokenService) Verify(string, string, string) error { return nil }

func issuedToken() *domain.SecurityToken {
	now := time.Now()
	return &domain.SecurityToken{
		Value:     "tok-value",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestCSRFHandler_Issue(t *testing.T) {
	tokens := &stubTokenService{token: issuedToken()}
	h := NewCSRFHandler(tokens, "https://codecoach.example", true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Issue(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body.Token != "tok-value" {
		t.Fatalf("token = %q", body.Token)
	}
	if body.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", body.ExpiresIn)
	}
}

func TestCSRFHandler_IssueCookieAttributes(t *testing.T) {
	tokens := &stubTokenService{token: issuedToken()}
	h := NewCSRFHandler(tokens, "https://codecoach.example", true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Issue(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CSRFCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("double-submit cookie not set")
	}
	if cookie.Value != "tok-value" {
		t.Fatalf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be http-only")
	}
	if !cookie.Secure {
		t.Fatal("cookie must be secure")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("same-site = %v", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Fatalf("path = %q", cookie.Path)
	}
	if cookie.Expires.IsZero() {
		t.Fatal("cookie expiry must match the token expiry")
	}
}

func TestCSRFHandler_IssueBindsIdentity(t *testing.T) {
	tokens := &stubTokenService{token: issuedToken()}
	h := NewCSRFHandler(tokens, "https://codecoach.example", false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", domain.Identity{UserID: "u9"})

	if err := h.Issue(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.identity != "u9" {
		t.Fatalf("logged-in callers get bound tokens, got identity %q", tokens.identity)
	}
}

func TestCSRFHandler_Preflight(t *testing.T) {
	tokens := &stubTokenService{token: issuedToken()}
	h := NewCSRFHandler(tokens, "https://codecoach.example", true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodOptions, "/csrf/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Preflight(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://codecoach.example" {
		t.Fatalf("allow-origin = %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); got != http.MethodPost {
		t.Fatalf("allow-methods = %q", got)
	}
}
