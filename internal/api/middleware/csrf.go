package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/api/metrics"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

const (
	// CSRFCookieName is the double-submit cookie. No component other
	// than the token service interprets its value.
	CSRFCookieName = "codecoach_csrf"
	// CSRFHeaderName carries the submitted token on programmatic calls.
	CSRFHeaderName = "X-CSRF-Token"
	// csrfFormField carries the submitted token on plain form posts.
	csrfFormField = "csrf_token"
)

// CSRF enforces the double-submit check on mutating routes. Expired and
// mismatched tokens are logged apart (refresh vs. suspected forgery)
// but surface the same generic 403 to the client.
func CSRF(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			submitted := c.Request().Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = c.FormValue(csrfFormField)
			}

			var cookieValue string
			if cookie, err := c.Cookie(CSRFCookieName); err == nil {
				cookieValue = cookie.Value
			}

			var boundIdentity string
			if identity, ok := Identity(c); ok {
				boundIdentity = identity.UserID
			}

			if err := tokens.Verify(submitted, cookieValue, boundIdentity); err != nil {
				result := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					result = "expired"
				}
				metrics.TokenVerificationsTotal.WithLabelValues(result).Inc()
				log.Warn().
					Str("result", result).
					Str("path", c.Path()).
					Str("ip", c.RealIP()).
					Msg("security token rejected")
				return echo.NewHTTPError(http.StatusForbidden, "invalid security token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			return next(c)
		}
	}
}
