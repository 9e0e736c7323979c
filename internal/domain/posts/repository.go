package posts

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	Update(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	// List devuelve el feed completo, más nuevo primero.
	List(ctx context.Context, limit int) ([]Post, error)
	Delete(ctx context.Context, id string) error
}
