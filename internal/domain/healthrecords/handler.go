package healthrecords

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"health-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc))
		rr.Get("/", listRecordsHandler(svc))

		rr.Get("/{recordID}", getRecordHandler(svc))
		rr.Delete("/{recordID}", deleteRecordHandler(svc))

		// Resumen asistido por AI del documento adjunto.
		rr.Post("/{recordID}/analyze", analyzeRecordHandler(svc))
	})
}

type createRecordRequest struct {
	Title   string `json:"title"`
	Kind    Kind   `json:"kind" enums:"report,prescription,scan,other"`
	FileURL string `json:"file_url"`
}

type recordResponse struct {
	ID             string         `json:"id"`
	OwnerUserID    string         `json:"owner_user_id"`
	Title          string         `json:"title"`
	Kind           Kind           `json:"kind"`
	FileURL        string         `json:"file_url"`
	Summary        string         `json:"summary"`
	AnalysisStatus AnalysisStatus `json:"analysis_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Title:   req.Title,
			Kind:    req.Kind,
			FileURL: req.FileURL,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter := ListFilter{Kind: Kind(r.URL.Query().Get("kind"))}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				filter.Limit = n
			}
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, rec, ok := ownedRecord(w, r, svc)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, rec, ok := ownedRecord(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), rec.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func analyzeRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, rec, ok := ownedRecord(w, r, svc)
		if !ok {
			return
		}

		updated, err := svc.Analyze(r.Context(), rec.ID)
		if err != nil {
			switch {
			case errors.Is(err, ErrAnalyzerUnavailable):
				http.Error(w, "analyzer unavailable", http.StatusServiceUnavailable)
			case errors.Is(err, ErrNoDocument):
				http.Error(w, "record has no document", http.StatusBadRequest)
			default:
				// Falla terminal del análisis; el registro quedó en failed.
				http.Error(w, "analysis failed", http.StatusBadGateway)
			}
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(updated))
	}
}

func ownedRecord(w http.ResponseWriter, r *http.Request, svc *Service) (string, HealthRecord, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", HealthRecord{}, false
	}

	rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return "", HealthRecord{}, false
	}

	if rec.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", HealthRecord{}, false
	}

	return claims.UserID, rec, true
}

func toRecordResponse(rec HealthRecord) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		OwnerUserID:    rec.OwnerUserID,
		Title:          rec.Title,
		Kind:           rec.Kind,
		FileURL:        rec.FileURL,
		Summary:        rec.Summary,
		AnalysisStatus: rec.AnalysisStatus,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
