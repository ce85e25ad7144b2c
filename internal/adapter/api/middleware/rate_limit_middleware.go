package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"unimarket/internal/infrastructure/ratelimit"
	"unimarket/pkg/logger"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit caps an authenticated user's budget for the given action. Must run
// after Authenticate so uid is set; falls back to the client IP otherwise.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit: key=%s action=%s wait=%v", key, action, wait)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       fmt.Sprintf("Too many %s requests", action),
					"retry_after": int(wait.Seconds()),
				})
			}

			return next(c)
		}
	}
}
