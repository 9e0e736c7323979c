package compliance

import (
	"encoding/json"
	"net/http"
	"strings"

	"health-companion/internal/domain/medications"
	"health-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, medsSvc *medications.Service) {
	r.Get("/me/compliance", complianceHandler(medsSvc))
}

// complianceHandler godoc
// @Summary Resumen de adherencia
// @Description Devuelve los contadores tomado/perdido sobre todas las entradas registradas del usuario. Se recalcula en cada request, no se cachea.
// @Tags compliance
// @Produce json
// @Success 200 {object} Summary
// @Failure 401 {string} string "unauthorized"
// @Router /me/compliance [get]
func complianceHandler(medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := medsSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Aggregate(meds))
	}
}
