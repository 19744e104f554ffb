package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/api/middleware"
	"github.com/sociopedia/server/internal/core/domain"
)

// ctxIdentity returns the user id attached by the Auth middleware. A missing
// identity means the route was mounted without Auth; treat it as access denied.
func ctxIdentity(c echo.Context) (string, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return "", domain.NewAuthenticationError(domain.ErrAccessDenied)
	}
	return id, nil
}
