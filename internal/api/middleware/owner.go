package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/domain"
)

// RequireSelf allows the request only when the path parameter param equals
// the authenticated user id. It must run after Auth.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.NewAuthenticationError(domain.ErrAccessDenied)
			}
			if c.Param(param) != id {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
