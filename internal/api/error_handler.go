package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sociopedia/server/internal/core/domain"
)

// errorResponse is the envelope for every non-authentication failure.
type errorResponse struct {
	Error string `json:"error"`
}

// authResponse is the envelope for authentication failures. The client
// application matches on these exact messages.
type authResponse struct {
	Msg string `json:"msg"`
}

// NewHTTPErrorHandler returns the single place where errors become HTTP
// responses:
//   - AuthenticationError → 400/401/403 with a {"msg": ...} body.
//   - ValidationError → 400, not found → 404, forbidden → 403.
//   - StoreError and anything unknown → 500. Only a duplicate email keeps its
//     message; every other cause is logged and never leaves the process.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var authErr *domain.AuthenticationError
	if errors.As(err, &authErr) {
		return resolveAuthError(authErr, log, c)
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, errorResponse{Error: validationErr.Error()}
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		if errors.Is(storeErr, domain.ErrUserExists) {
			return http.StatusInternalServerError, errorResponse{Error: domain.ErrUserExists.Error()}
		}
		logUnhandled(log, c, err)
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}

	// Echo's own errors: bind failures, unknown routes, body limit, rate limit.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, errorResponse{Error: "post not found"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func resolveAuthError(err *domain.AuthenticationError, log zerolog.Logger, c echo.Context) (int, any) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, authResponse{Msg: "User does not exist."}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, authResponse{Msg: "Invalid credentials."}
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, authResponse{Msg: "Access Denied."}
	case errors.Is(err, domain.ErrInvalidToken):
		log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
		return http.StatusUnauthorized, authResponse{Msg: "Invalid token."}
	}

	logUnhandled(log, c, err)
	return http.StatusUnauthorized, authResponse{Msg: "Unauthorized."}
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
