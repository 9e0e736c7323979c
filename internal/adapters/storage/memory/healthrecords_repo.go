package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"health-companion/internal/domain/healthrecords"
)

type healthRecordsRepo struct {
	mu   sync.RWMutex
	byID map[string]healthrecords.HealthRecord
}

func NewHealthRecordsRepo() healthrecords.Repository {
	return &healthRecordsRepo{
		byID: make(map[string]healthrecords.HealthRecord),
	}
}

func (r *healthRecordsRepo) Create(ctx context.Context, rec healthrecords.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordsRepo) Update(ctx context.Context, rec healthrecords.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return healthrecords.HealthRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *healthRecordsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter healthrecords.ListFilter) ([]healthrecords.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]healthrecords.HealthRecord, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		if filter.Kind != "" && rec.Kind != filter.Kind {
			continue
		}
		out = append(out, rec)
	}

	// más nuevo primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *healthRecordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
