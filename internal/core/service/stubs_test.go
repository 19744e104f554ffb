package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/sociopedia/server/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Friends != nil {
		clone.Friends = make([]string, len(u.Friends))
		copy(clone.Friends, u.Friends)
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.NewStoreError("insert user", domain.ErrUserExists)
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) AddFriend(_ context.Context, userID, friendID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.HasFriend(friendID) {
		u.Friends = append(u.Friends, friendID)
	}
	return nil
}

func (r *stubUserRepo) RemoveFriend(_ context.Context, userID, friendID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Friends[:0]
	for _, f := range u.Friends {
		if f != friendID {
			kept = append(kept, f)
		}
	}
	u.Friends = kept
	return nil
}

type stubPostRepo struct {
	posts  map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = make(map[string]bool, len(p.Likes))
	for k, v := range p.Likes {
		clone.Likes[k] = v
	}
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	created := clonePost(post)
	created.ID = fmt.Sprintf("post-%d", r.nextID)
	// keep ordering deterministic for tests that create posts in a tight loop
	created.CreatedAt = created.CreatedAt.Add(time.Duration(r.nextID) * time.Millisecond)
	r.posts[created.ID] = clonePost(created)
	return created, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	return r.filter(func(*domain.Post) bool { return true }), nil
}

func (r *stubPostRepo) ListByUser(_ context.Context, userID string) ([]*domain.Post, error) {
	return r.filter(func(p *domain.Post) bool { return p.UserID == userID }), nil
}

func (r *stubPostRepo) SetLike(_ context.Context, postID, userID string, liked bool) (*domain.Post, error) {
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if liked {
		p.Likes[userID] = true
	} else {
		delete(p.Likes, userID)
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) filter(keep func(*domain.Post) bool) []*domain.Post {
	out := []*domain.Post{}
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
