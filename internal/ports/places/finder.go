package places

import (
	"context"
	"errors"
)

// ErrNotConfigured: no hay upstream de búsqueda configurado.
var ErrNotConfigured = errors.New("places finder not configured")

// Place es un lugar de atención médica cercano.
type Place struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Lat     float64
	Lng     float64
}

// Finder busca hospitales/centros cerca de una coordenada.
type Finder interface {
	Nearby(ctx context.Context, lat, lng float64, radiusM int) ([]Place, error)
}
