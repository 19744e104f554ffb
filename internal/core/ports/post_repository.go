package ports

import (
	"context"

	"github.com/sociopedia/server/internal/core/domain"
)

// PostRepository defines persistence operations for posts. List methods
// return posts newest first.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Post, error)
	// SetLike records (liked=true) or clears userID's like and returns the updated post.
	SetLike(ctx context.Context, postID, userID string, liked bool) (*domain.Post, error)
}
