package ports

import (
	"context"

	"github.com/sociopedia/server/internal/core/domain"
)

// RegisterInput carries the registration form. Password is plaintext and is
// never persisted.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PicturePath string
	Friends     []string
	Location    string
	Occupation  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
