package healthrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-companion/internal/ports/analysis"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrAnalyzerUnavailable = errors.New("document analyzer unavailable")
	ErrNoDocument          = errors.New("record has no document to analyze")
)

type Service struct {
	repo     Repository
	analyzer analysis.Analyzer // puede ser nil: Analyze devuelve ErrAnalyzerUnavailable
	now      func() time.Time
}

func NewService(repo Repository, analyzer analysis.Analyzer) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		now:      time.Now,
	}
}

type CreateInput struct {
	Title   string
	Kind    Kind
	FileURL string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (HealthRecord, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return HealthRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return HealthRecord{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindOther
	}
	if !validKind(kind) {
		return HealthRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := HealthRecord{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		Title:          strings.TrimSpace(in.Title),
		Kind:           kind,
		FileURL:        strings.TrimSpace(in.FileURL),
		AnalysisStatus: AnalysisNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]HealthRecord, error) {
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Analyze manda el documento al analizador y guarda el resumen. Sincrónico:
// el polling acotado (intentos fijos, delay fijo, falla terminal) vive en el
// adapter. En falla el registro queda en analysis_status=failed.
func (s *Service) Analyze(ctx context.Context, id string) (HealthRecord, error) {
	if s.analyzer == nil {
		return HealthRecord{}, ErrAnalyzerUnavailable
	}

	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return HealthRecord{}, err
	}
	if rec.FileURL == "" {
		return HealthRecord{}, ErrNoDocument
	}

	rec.AnalysisStatus = AnalysisPending
	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return HealthRecord{}, err
	}

	summary, err := s.analyzer.Summarize(ctx, rec.FileURL)
	if err != nil {
		rec.AnalysisStatus = AnalysisFailed
		rec.UpdatedAt = s.now()
		// best effort: si además falla el update, reportamos la falla original
		_ = s.repo.Update(ctx, rec)
		return HealthRecord{}, err
	}

	rec.Summary = summary
	rec.AnalysisStatus = AnalysisDone
	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}
