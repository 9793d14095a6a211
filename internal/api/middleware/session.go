package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "codecoach_session"

// identityKey is the echo context key the resolved identity is stored
// under. Handlers read it back via c.Get.
const identityKey = "identity"

// AuthGuard is the auth-guard surface this middleware needs. The core
// guard takes an explicit session ID so it stays testable with injected
// fakes; the middleware supplies the ID from the request's cookie jar.
type AuthGuard interface {
	Try(ctx context.Context, sessionID string) (domain.Identity, bool)
}

// Session resolves the session cookie through the auth guard and, when
// valid, attaches the identity to the request context. Requests without
// a valid session pass through anonymously; pair with RequireIdentity
// on routes that must be authenticated.
func Session(guard AuthGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if identity, ok := guard.Try(c.Request().Context(), cookie.Value); ok {
					c.Set(identityKey, identity)
				}
			}
			return next(c)
		}
	}
}

// RequireIdentity rejects requests that Session left anonymous.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(identityKey).(domain.Identity); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return next(c)
		}
	}
}

// Identity extracts the identity attached by Session. ok is false for
// anonymous requests.
func Identity(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
