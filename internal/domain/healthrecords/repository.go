package healthrecords

import "context"

type Repository interface {
	Create(ctx context.Context, rec HealthRecord) error
	Update(ctx context.Context, rec HealthRecord) error
	GetByID(ctx context.Context, id string) (HealthRecord, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]HealthRecord, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Kind  Kind // vacío = todos
	Limit int
}
