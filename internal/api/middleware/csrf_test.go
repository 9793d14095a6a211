package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type stubTokens struct {
	err       error
	submitted string
	cookie    string
	identity  string
}

func (s *stubTokens) Generate(string) (*domain.SecurityToken, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokens) Verify(submitted, cookie, identity string) error {
	s.submitted = submitted
	s.cookie = cookie
	s.identity = identity
	return s.err
}

func csrfRequest(t *testing.T, tokens *stubTokens, headerToken, cookieToken string, identity *domain.Identity) (*httptest.ResponseRecorder, error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/content", nil)
	if headerToken != "" {
		req.Header.Set(CSRFHeaderName, headerToken)
	}
	if cookieToken != "" {
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: cookieToken})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, *identity)
	}

	handled := false
	h := CSRF(tokens, zerolog.Nop())(func(c echo.Context) error {
		handled = true
		return c.NoContent(http.StatusOK)
	})
	return rec, h(c), handled
}

func TestCSRF_Valid(t *testing.T) {
	tokens := &stubTokens{}

	_, err, handled := csrfRequest(t, tokens, "tok", "tok", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handled {
		t.Fatal("valid token must reach the handler")
	}
	if tokens.submitted != "tok" || tokens.cookie != "tok" {
		t.Fatalf("pair not forwarded: %q / %q", tokens.submitted, tokens.cookie)
	}
}

func TestCSRF_Invalid(t *testing.T) {
	tokens := &stubTokens{err: domain.ErrTokenInvalid}

	_, err, handled := csrfRequest(t, tokens, "tok", "other", nil)
	if handled {
		t.Fatal("rejected token must not reach the handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestCSRF_ExpiredSameResponse(t *testing.T) {
	tokens := &stubTokens{err: domain.ErrTokenExpired}

	_, err, _ := csrfRequest(t, tokens, "tok", "tok", nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expired tokens must look like any other rejection, got %v", err)
	}
	if msg, _ := he.Message.(string); msg != "invalid security token" {
		t.Fatalf("expired tokens must not leak a distinct message: %v", he.Message)
	}
}

func TestCSRF_BindsSessionIdentity(t *testing.T) {
	tokens := &stubTokens{}
	identity := domain.Identity{UserID: "u1", Email: "a@example.com"}

	if _, err, _ := csrfRequest(t, tokens, "tok", "tok", &identity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.identity != "u1" {
		t.Fatalf("session identity should be bound into verification, got %q", tokens.identity)
	}
}

func TestCSRF_FormFieldFallback(t *testing.T) {
	tokens := &stubTokens{}

	e := echo.New()
	form := strings.NewReader(csrfFormField + "=formtok")
	req := httptest.NewRequest(http.MethodPost, "/v1/content", form)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "formtok"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := CSRF(tokens, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.submitted != "formtok" {
		t.Fatalf("form field should back up the header, got %q", tokens.submitted)
	}
}
