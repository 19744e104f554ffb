package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sociopedia/server/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Failures are reported as
// *domain.ValidationError so the error handler renders them as 400.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	if len(ve) == 1 {
		field, msg := fieldError(ve[0])
		return domain.NewValidationError(field, msg)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field, msg := fieldError(fe)
		msgs = append(msgs, field+" "+msg)
	}
	return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
}

// fieldError converts a single validator.FieldError into a field name and a
// human-readable message.
func fieldError(fe validator.FieldError) (string, string) {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field, "is required"
	case "email":
		return field, "must be a valid email"
	case "min":
		return field, fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return field, fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return field, fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
