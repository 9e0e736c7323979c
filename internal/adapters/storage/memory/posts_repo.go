package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"health-companion/internal/domain/posts"
)

type postsRepo struct {
	mu   sync.RWMutex
	byID map[string]posts.Post
}

func NewPostsRepo() posts.Repository {
	return &postsRepo{
		byID: make(map[string]posts.Post),
	}
}

func (r *postsRepo) Create(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.byID[p.ID] = clonePost(p)
	return nil
}

func (r *postsRepo) Update(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = clonePost(p)
	return nil
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return posts.Post{}, ErrNotFound
	}
	return clonePost(p), nil
}

func (r *postsRepo) List(ctx context.Context, limit int) ([]posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]posts.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePost(p))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func clonePost(p posts.Post) posts.Post {
	likes := make(map[string]bool, len(p.Likes))
	for k, v := range p.Likes {
		likes[k] = v
	}
	p.Likes = likes
	return p
}
