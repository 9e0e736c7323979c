package preferences

import "context"

type Repository interface {
	// Get devuelve (prefs, found, err). found=false no es error: el usuario
	// todavía no guardó preferencias.
	Get(ctx context.Context, userID string) (Preferences, bool, error)
	Put(ctx context.Context, p Preferences) error
}
