package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"health-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))

		// Adherencia: marcar dosis tomada / no tomada para una fecha.
		mr.Put("/{medicationID}/doses/{date}", recordDoseHandler(svc))
	})
}

// createMedicationRequest es el cuerpo para registrar una medicación.
type createMedicationRequest struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"` // YYYY-MM-DD
	EndDate   string   `json:"end_date"`   // YYYY-MM-DD
	Timings   []string `json:"timings"`    // HH:MM, al menos uno
	Frequency string   `json:"frequency"`
	Remarks   string   `json:"remarks"`
}

type updateMedicationRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string   `json:"name"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	Timings   *[]string `json:"timings"`
	Frequency *string   `json:"frequency"`
	Remarks   *string   `json:"remarks"`
}

type recordDoseRequest struct {
	// Puntero para exigir el campo: {"taken": true|false}.
	Taken *bool `json:"taken"`
}

// medicationResponse representa una medicación devuelta por la API.
// taken siempre se serializa como objeto (vacío = {}), nunca ausente.
type medicationResponse struct {
	ID          string          `json:"id"`
	OwnerUserID string          `json:"owner_user_id"`
	Name        string          `json:"name"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Timings     []string        `json:"timings"`
	Frequency   string          `json:"frequency"`
	Remarks     string          `json:"remarks"`
	Taken       map[string]bool `json:"taken"`
	TakenToday  TakenState      `json:"taken_today" enums:"taken,not_taken,unrecorded"`
	CreatedAt   time.Time       `json:"created_at"`
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Description Crea una medicación del usuario autenticado con su horario de dosis. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Datos de la medicación; timings en HH:MM, fechas en YYYY-MM-DD"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / horarios o fechas inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Timings:   req.Timings,
			Frequency: req.Frequency,
			Remarks:   req.Remarks,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m, svc.Today()))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones
// @Description Lista las medicaciones del usuario autenticado con el estado de la dosis de hoy (taken/not_taken/unrecorded).
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		today := svc.Today()
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m, today))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m, svc.Today()))
	}
}

func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, current, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), current.ID, UpdateInput{
			Name:      req.Name,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Timings:   req.Timings,
			Frequency: req.Frequency,
			Remarks:   req.Remarks,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(updated, svc.Today()))
	}
}

func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), m.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// recordDoseHandler godoc
// @Summary Registrar dosis tomada / no tomada
// @Description Sobreescribe taken[date] de la medicación preservando el resto de los días. Idempotente; repetir con el mismo valor no cambia nada, el valor contrario corrige el registro.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Param date path string true "Fecha calendario YYYY-MM-DD"
// @Param payload body recordDoseRequest true "Estado de la dosis"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / fecha inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses/{date} [put]
func recordDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		var req recordDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Taken == nil {
			http.Error(w, "body must be {\"taken\": true|false}", http.StatusBadRequest)
			return
		}

		date := chi.URLParam(r, "date")
		updated, err := svc.RecordDose(r.Context(), m.ID, date, *req.Taken)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			// Falla del store: el cambio no se aplicó, el caller no debe
			// asumir éxito.
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(updated, svc.Today()))
	}
}

// ownedMedication resuelve claims + medicación del path y corta con
// 401/404/403 si corresponde. Las medicaciones no se comparten: solo el
// dueño accede.
func ownedMedication(w http.ResponseWriter, r *http.Request, svc *Service) (string, Medication, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", Medication{}, false
	}

	id := chi.URLParam(r, "medicationID")
	m, err := svc.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "medication not found", http.StatusNotFound)
		return "", Medication{}, false
	}

	if m.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", Medication{}, false
	}

	return claims.UserID, m, true
}

func toMedicationResponse(m Medication, today string) medicationResponse {
	taken := m.Taken
	if taken == nil {
		taken = map[string]bool{}
	}
	return medicationResponse{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Timings:     m.Timings,
		Frequency:   m.Frequency,
		Remarks:     m.Remarks,
		Taken:       taken,
		TakenToday:  m.TakenOn(today),
		CreatedAt:   m.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
