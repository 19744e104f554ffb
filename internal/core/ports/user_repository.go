package ports

import (
	"context"

	"github.com/sociopedia/server/internal/core/domain"
)

// UserRepository defines the persistence operations for users.
// Lookups of unknown ids or emails return domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// AddFriend and RemoveFriend update only userID's friend list.
	AddFriend(ctx context.Context, userID, friendID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
}
