package medications

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

type CreateInput struct {
	Name      string
	StartDate string
	EndDate   string
	Timings   []string
	Frequency string
	Remarks   string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	timings, err := normalizeTimings(in.Timings)
	if err != nil {
		return Medication{}, err
	}
	if err := validateDate(in.StartDate); err != nil {
		return Medication{}, err
	}
	if err := validateDate(in.EndDate); err != nil {
		return Medication{}, err
	}

	m := Medication{
		// uuid y no timestamp de creación: dos altas en el mismo milisegundo
		// no pueden colisionar.
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Timings:     timings,
		Frequency:   strings.TrimSpace(in.Frequency),
		Remarks:     strings.TrimSpace(in.Remarks),
		Taken:       map[string]bool{},
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar. Taken no se edita por acá.
	Name      *string
	StartDate *string
	EndDate   *string
	Timings   *[]string
	Frequency *string
	Remarks   *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.StartDate != nil {
		if err := validateDate(*in.StartDate); err != nil {
			return Medication{}, err
		}
		m.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		if err := validateDate(*in.EndDate); err != nil {
			return Medication{}, err
		}
		m.EndDate = *in.EndDate
	}
	if in.Timings != nil {
		timings, err := normalizeTimings(*in.Timings)
		if err != nil {
			return Medication{}, err
		}
		m.Timings = timings
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.Remarks != nil {
		m.Remarks = strings.TrimSpace(*in.Remarks)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// RecordDose registra tomado/no tomado para una fecha: mergea taken[date]
// preservando el resto de los días y persiste el registro completo con una
// sola escritura. Idempotente por (fecha, valor); el booleano contrario
// sobreescribe (corrige un mis-tap). Si la escritura falla, el estado no
// cambia para el caller.
func (s *Service) RecordDose(ctx context.Context, id, date string, taken bool) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	if err := validateDate(date); err != nil {
		return Medication{}, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	merged := make(map[string]bool, len(m.Taken)+1)
	for k, v := range m.Taken {
		merged[k] = v
	}
	merged[date] = taken
	m.Taken = merged

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) ListOwners(ctx context.Context) ([]string, error) {
	return s.repo.ListOwners(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Today devuelve la fecha calendario actual (clave de Taken) según el reloj
// del servicio, en el timezone local del proceso.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

func normalizeTimings(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, ErrInvalidInput
	}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		// HH:MM estricto (24h, cero a la izquierda): "9:00" no vale.
		if len(t) != len(TimeLayout) {
			return nil, ErrInvalidInput
		}
		if _, err := time.Parse(TimeLayout, t); err != nil {
			return nil, ErrInvalidInput
		}
		out = append(out, t)
	}
	return out, nil
}

func validateDate(date string) error {
	if len(date) != len(DateLayout) {
		return ErrInvalidInput
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidInput
	}
	return nil
}
