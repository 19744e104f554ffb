package ports

import (
	"context"

	"github.com/sociopedia/server/internal/core/domain"
)

// UserService exposes profile reads and friendship management.
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetFriends(ctx context.Context, id string) ([]domain.Friend, error)
	// ToggleFriend adds friendID to id's friends (and vice versa) or removes the
	// pair when already connected. It returns id's friend list afterwards.
	ToggleFriend(ctx context.Context, id, friendID string) ([]domain.Friend, error)
}
