package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/api/metrics"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// RateLimit guards a route with the given action name and policy. The
// client identity is the request's real IP. Denied requests carry the
// retry hint in headers and resolve to domain.ErrRateLimited through
// the central error handler; the counter is incremented either way.
func RateLimit(limiter ports.RateLimiter, action string, policy domain.RateLimitPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := limiter.Check(c.Request().Context(), c.RealIP(), action, policy)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				metrics.RateLimitDecisionsTotal.WithLabelValues(action, "denied").Inc()
				retryAfter := int(time.Until(decision.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return domain.ErrRateLimited
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(action, "allowed").Inc()
			return next(c)
		}
	}
}
