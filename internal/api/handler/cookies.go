package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

// setTokenCookie binds the issued security token to the client for the
// double-submit check: http-only, same-site, secure, scoped to the
// application root, expiring with the token.
func setTokenCookie(c echo.Context, token *domain.SecurityToken, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CSRFCookieName,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func setSessionCookie(c echo.Context, sessionID string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
