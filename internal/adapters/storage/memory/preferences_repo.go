package memory

import (
	"context"
	"sync"

	"health-companion/internal/domain/preferences"
)

type preferencesRepo struct {
	mu       sync.RWMutex
	byUserID map[string]preferences.Preferences
}

func NewPreferencesRepo() preferences.Repository {
	return &preferencesRepo{
		byUserID: make(map[string]preferences.Preferences),
	}
}

func (r *preferencesRepo) Get(ctx context.Context, userID string) (preferences.Preferences, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return preferences.Preferences{}, false, nil
	}
	return p, true, nil
}

func (r *preferencesRepo) Put(ctx context.Context, p preferences.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUserID[p.UserID] = p
	return nil
}
