package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/metrics"
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// GetUser returns the profile without its password hash.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) GetFriends(ctx context.Context, id string) ([]domain.Friend, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.friendsOf(ctx, user.Friends)
}

// ToggleFriend updates both friend lists so the relation stays symmetric.
func (s *UserService) ToggleFriend(ctx context.Context, id, friendID string) ([]domain.Friend, error) {
	if id == friendID {
		return nil, domain.NewValidationError("friendId", "must differ from the user id")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, friendID); err != nil {
		return nil, err
	}

	action := "added"
	if user.HasFriend(friendID) {
		action = "removed"
		if err := s.repo.RemoveFriend(ctx, id, friendID); err != nil {
			return nil, err
		}
		if err := s.repo.RemoveFriend(ctx, friendID, id); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.AddFriend(ctx, id, friendID); err != nil {
			return nil, err
		}
		if err := s.repo.AddFriend(ctx, friendID, id); err != nil {
			return nil, err
		}
	}

	metrics.FriendshipChangesTotal.WithLabelValues(action).Inc()
	s.log.Info().Str("user_id", id).Str("friend_id", friendID).Str("action", action).Msg("friendship toggled")

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.friendsOf(ctx, updated.Friends)
}

// friendsOf resolves ids in order, skipping users that no longer exist.
func (s *UserService) friendsOf(ctx context.Context, ids []string) ([]domain.Friend, error) {
	friends := make([]domain.Friend, 0, len(ids))
	if len(ids) == 0 {
		return friends, nil
	}

	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			friends = append(friends, u.AsFriend())
		}
	}
	return friends, nil
}
