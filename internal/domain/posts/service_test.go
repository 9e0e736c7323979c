package posts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Post
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Post{}}
}

func (r *testRepo) Create(ctx context.Context, p Post) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Post) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return Post{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context, limit int) ([]Post, error) {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "hola"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty author: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank content: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", strings.Repeat("x", maxContentLen+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized content: expected ErrInvalidInput, got %v", err)
	}

	p, err := svc.Create(ctx, "user-1", "primer post")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Likes == nil || len(p.Likes) != 0 {
		t.Fatalf("expected empty non-nil Likes, got %#v", p.Likes)
	}
}

func TestService_ToggleLike_OnOff(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, "author-1", "post con likes")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	liked, err := svc.ToggleLike(ctx, p.ID, "user-2")
	if err != nil {
		t.Fatalf("ToggleLike on error: %v", err)
	}
	if !liked.Likes["user-2"] || len(liked.Likes) != 1 {
		t.Fatalf("expected like set, got %#v", liked.Likes)
	}

	unliked, err := svc.ToggleLike(ctx, p.ID, "user-2")
	if err != nil {
		t.Fatalf("ToggleLike off error: %v", err)
	}
	// off borra la entrada, no la deja en false
	if _, ok := unliked.Likes["user-2"]; ok {
		t.Fatalf("expected like entry removed, got %#v", unliked.Likes)
	}
}

func TestService_ToggleLike_IndependentUsers(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, "author-1", "post")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.ToggleLike(ctx, p.ID, "user-2"); err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	got, err := svc.ToggleLike(ctx, p.ID, "user-3")
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if len(got.Likes) != 2 {
		t.Fatalf("expected 2 likes, got %#v", got.Likes)
	}

	// sacar el like de user-2 no toca el de user-3
	got, err = svc.ToggleLike(ctx, p.ID, "user-2")
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if !got.Likes["user-3"] || len(got.Likes) != 1 {
		t.Fatalf("expected only user-3's like, got %#v", got.Likes)
	}
}
