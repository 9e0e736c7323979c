package hospitals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"health-companion/internal/middleware"
	"health-companion/internal/ports/places"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/hospitals", nearbyHospitalsHandler(svc))
}

type hospitalResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// nearbyHospitalsHandler godoc
// @Summary Hospitales cercanos
// @Description Busca hospitales cerca de una coordenada vía el proveedor de mapas configurado.
// @Tags hospitals
// @Produce json
// @Param lat query number true "Latitud"
// @Param lng query number true "Longitud"
// @Param radius query int false "Radio en metros (default 5000, máximo 50000)"
// @Success 200 {array} hospitalResponse
// @Failure 400 {string} string "coordenadas inválidas"
// @Failure 502 {string} string "upstream failure"
// @Failure 503 {string} string "finder not configured"
// @Router /hospitals [get]
func nearbyHospitalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat != nil || errLng != nil {
			http.Error(w, "lat and lng are required numbers", http.StatusBadRequest)
			return
		}

		radius := 0
		if v := r.URL.Query().Get("radius"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				radius = n
			}
		}

		items, err := svc.Nearby(r.Context(), lat, lng, radius)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid coordinates", http.StatusBadRequest)
			case errors.Is(err, places.ErrNotConfigured):
				http.Error(w, "hospital search not configured", http.StatusServiceUnavailable)
			default:
				http.Error(w, "upstream error", http.StatusBadGateway)
			}
			return
		}

		out := make([]hospitalResponse, 0, len(items))
		for _, p := range items {
			out = append(out, hospitalResponse{
				ID:      p.ID,
				Name:    p.Name,
				Address: p.Address,
				Phone:   p.Phone,
				Lat:     p.Lat,
				Lng:     p.Lng,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
