package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/metrics"
)

const bearerPrefix = "Bearer "

// Auth validates the bearer token and attaches its subject to the request.
// The header may carry the raw token or "Bearer <token>". A missing token is
// reported as ErrAccessDenied, a bad one as ErrInvalidToken; next is not
// called in either case.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(raw, bearerPrefix) {
				raw = raw[len(bearerPrefix):]
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.NewAuthenticationError(domain.ErrAccessDenied)
			}

			subject, err := tokens.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return &domain.AuthenticationError{Err: domain.ErrInvalidToken, Cause: err}
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			SetIdentity(c, subject)
			return next(c)
		}
	}
}
