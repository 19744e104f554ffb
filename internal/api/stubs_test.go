package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sociopedia/server/internal/core/domain"
)

// memUserRepo is an in-memory ports.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	next  int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.NewStoreError("create user", domain.ErrUserExists)
		}
	}
	r.next++
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", r.next)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.Friends = append([]string{}, u.Friends...)
	return &cp, nil
}

func (r *memUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, err := r.FindByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) AddFriend(_ context.Context, userID, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.HasFriend(friendID) {
		u.Friends = append(u.Friends, friendID)
	}
	return nil
}

func (r *memUserRepo) RemoveFriend(_ context.Context, userID, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

// memPostRepo is an in-memory ports.PostRepository.
type memPostRepo struct {
	mu    sync.Mutex
	next  int
	posts map[string]*domain.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *memPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	cp := *p
	cp.ID = fmt.Sprintf("post-%d", r.next)
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(r.next) * time.Millisecond)
	r.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) List(ctx context.Context) ([]*domain.Post, error) {
	return r.filter(func(*domain.Post) bool { return true }), nil
}

func (r *memPostRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	return r.filter(func(p *domain.Post) bool { return p.UserID == userID }), nil
}

func (r *memPostRepo) SetLike(_ context.Context, postID, userID string, liked bool) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	likes := make(map[string]bool, len(p.Likes)+1)
	for k, v := range p.Likes {
		likes[k] = v
	}
	if liked {
		likes[userID] = true
	} else {
		delete(likes, userID)
	}
	p.Likes = likes
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) filter(keep func(*domain.Post) bool) []*domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
