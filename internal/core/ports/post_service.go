package ports

import (
	"context"

	"github.com/sociopedia/server/internal/core/domain"
)

// CreatePostInput carries a new post. UserID is the authenticated author.
type CreatePostInput struct {
	UserID      string
	Description string
	PicturePath string
}

type PostService interface {
	// CreatePost stores the post and returns the refreshed feed.
	CreatePost(ctx context.Context, input CreatePostInput) ([]*domain.Post, error)
	Feed(ctx context.Context) ([]*domain.Post, error)
	UserPosts(ctx context.Context, userID string) ([]*domain.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*domain.Post, error)
}
