package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const maxContentLen = 2000

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, authorUserID, content string) (Post, error) {
	if strings.TrimSpace(authorUserID) == "" {
		return Post{}, ErrInvalidInput
	}
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxContentLen {
		return Post{}, ErrInvalidInput
	}

	p := Post{
		ID:           uuid.NewString(),
		AuthorUserID: authorUserID,
		Content:      content,
		Likes:        map[string]bool{},
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]Post, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// ToggleLike invierte el like de userID: presente lo saca, ausente lo pone.
// Read-modify-write sin control de concurrencia optimista; entre clientes
// concurrentes aplica last-write-wins del store.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (Post, error) {
	postID = strings.TrimSpace(postID)
	userID = strings.TrimSpace(userID)
	if postID == "" || userID == "" {
		return Post{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}

	likes := make(map[string]bool, len(p.Likes)+1)
	for k, v := range p.Likes {
		likes[k] = v
	}
	if likes[userID] {
		delete(likes, userID)
	} else {
		likes[userID] = true
	}
	p.Likes = likes

	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}
