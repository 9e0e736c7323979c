package hospitals

import (
	"context"
	"errors"

	"health-companion/internal/ports/places"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	defaultRadiusM = 5000
	maxRadiusM     = 50000
)

// Service es una fachada fina sobre el port de búsqueda: valida coordenadas
// y acota el radio; el upstream (y su formato de wire) queda en el adapter.
type Service struct {
	finder places.Finder
}

func NewService(finder places.Finder) *Service {
	return &Service{finder: finder}
}

func (s *Service) Nearby(ctx context.Context, lat, lng float64, radiusM int) ([]places.Place, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidInput
	}
	if radiusM <= 0 {
		radiusM = defaultRadiusM
	}
	if radiusM > maxRadiusM {
		radiusM = maxRadiusM
	}

	if s.finder == nil {
		return nil, places.ErrNotConfigured
	}
	return s.finder.Nearby(ctx, lat, lng, radiusM)
}
