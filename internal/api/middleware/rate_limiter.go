package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sociopedia/server/internal/metrics"
)

// RateLimiter decides whether another request for key fits in the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// KeyFunc derives the limiter key for a request.
type KeyFunc func(c echo.Context) string

// KeyByIP keys requests by client address.
func KeyByIP(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// RateLimit rejects requests over the limiter's budget with 429 and a
// Retry-After header. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, keyFn KeyFunc, log zerolog.Logger) echo.MiddlewareFunc {
	if keyFn == nil {
		keyFn = KeyByIP
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := keyFn(c)
			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				secs := int(retryAfter.Round(time.Second).Seconds())
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again shortly")
			}
			return next(c)
		}
	}
}
