package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
)

type ctxKey string

// IdentityKey is the echo.Context key holding the authenticated user id.
const IdentityKey = "user_id"

const identityCtxKey ctxKey = "user_id"

// SetIdentity attaches the authenticated user id to both the echo context and
// the request context.
func SetIdentity(c echo.Context, userID string) {
	c.Set(IdentityKey, userID)
	req := c.Request()
	c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))
}

// IdentityFrom returns the user id set by Auth.
func IdentityFrom(c echo.Context) (string, bool) {
	id, ok := c.Get(IdentityKey).(string)
	return id, ok && id != ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityCtxKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityCtxKey).(string)
	return id, ok && id != ""
}
