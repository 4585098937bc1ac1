package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/caching"
)

// RateLimit applies a fixed-window limit per client IP and route. Redis
// failures let the request through; availability beats throttling accuracy.
func RateLimit(cache caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", c.RealIP(), c.Path())

			allowed, err := cache.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
