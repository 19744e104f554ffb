package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/metrics"
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// CreatePost copies the author's name, location and picture onto the post so
// the feed renders without extra lookups.
func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) ([]*domain.Post, error) {
	if strings.TrimSpace(in.Description) == "" && in.PicturePath == "" {
		return nil, domain.NewValidationError("description", "or picture is required")
	}

	author, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		UserID:          author.ID,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		Description:     in.Description,
		PicturePath:     in.PicturePath,
		UserPicturePath: author.PicturePath,
		Likes:           map[string]bool{},
		Comments:        []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.logger.Info().Str("post_id", created.ID).Str("user_id", in.UserID).Msg("post created")

	return s.posts.List(ctx)
}

func (s *PostService) Feed(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) UserPosts(ctx context.Context, userID string) ([]*domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// ToggleLike flips userID's like on the post.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.posts.SetLike(ctx, postID, userID, !post.LikedBy(userID))
}
