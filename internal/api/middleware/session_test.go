package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type stubGuard struct {
	identity domain.Identity
	ok       bool
}

func (s *stubGuard) Try(context.Context, string) (domain.Identity, bool) {
	return s.identity, s.ok
}

func TestSession_AttachesIdentity(t *testing.T) {
	guard := &stubGuard{identity: domain.Identity{UserID: "u1", Plan: domain.PlanPro}, ok: true}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/content", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Session(guard)(func(c echo.Context) error {
		identity, ok := Identity(c)
		if !ok || identity.UserID != "u1" {
			t.Fatalf("identity not attached: %+v ok=%v", identity, ok)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSession_AnonymousPassesThrough(t *testing.T) {
	guard := &stubGuard{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/content", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Session(guard)(func(c echo.Context) error {
		if _, ok := Identity(c); ok {
			t.Fatal("no cookie must mean no identity")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("anonymous request must still pass through: %v", err)
	}
}

func TestRequireIdentity_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/export/pdf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireIdentity()(func(c echo.Context) error {
		t.Fatal("handler must not run without an identity")
		return nil
	})

	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
