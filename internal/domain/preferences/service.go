package preferences

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get devuelve las preferencias del usuario, defaults si nunca guardó.
func (s *Service) Get(ctx context.Context, userID string) (Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preferences{}, ErrInvalidInput
	}

	p, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if !found {
		return Defaults(userID), nil
	}
	return p, nil
}

type PutInput struct {
	RemindersEnabled bool
	Theme            string
}

func (s *Service) Put(ctx context.Context, userID string, in PutInput) (Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preferences{}, ErrInvalidInput
	}

	theme := strings.TrimSpace(in.Theme)
	if theme == "" {
		theme = "light"
	}
	if theme != "light" && theme != "dark" {
		return Preferences{}, ErrInvalidInput
	}

	p := Preferences{
		UserID:           userID,
		RemindersEnabled: in.RemindersEnabled,
		Theme:            theme,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}
