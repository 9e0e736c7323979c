// Package overpass implementa la búsqueda de hospitales cercanos contra un
// endpoint estilo Overpass (OpenStreetMap).
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"health-companion/internal/ports/places"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Finder struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Finder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Finder{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (f *Finder) IsConfigured() bool {
	return f != nil && f.baseURL != ""
}

func (f *Finder) Nearby(ctx context.Context, lat, lng float64, radiusM int) ([]places.Place, error) {
	if !f.IsConfigured() {
		return nil, places.ErrNotConfigured
	}

	// El upstream habla Overpass QL por form-encoding, no JSON.
	query := fmt.Sprintf(
		`[out:json][timeout:10];node["amenity"="hospital"](around:%d,%f,%f);out;`,
		radiusM, lat, lng,
	)
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("overpass status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Elements []struct {
			ID   int64             `json:"id"`
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("overpass decode: %w", err)
	}

	result := make([]places.Place, 0, len(out.Elements))
	for _, el := range out.Elements {
		name := el.Tags["name"]
		if name == "" {
			// nodo sin nombre no sirve para mostrar
			continue
		}
		result = append(result, places.Place{
			ID:      strconv.FormatInt(el.ID, 10),
			Name:    name,
			Address: formatAddress(el.Tags),
			Phone:   el.Tags["phone"],
			Lat:     el.Lat,
			Lng:     el.Lon,
		})
	}

	return result, nil
}

func formatAddress(tags map[string]string) string {
	parts := make([]string, 0, 2)
	if v := tags["addr:street"]; v != "" {
		if n := tags["addr:housenumber"]; n != "" {
			v = v + " " + n
		}
		parts = append(parts, v)
	}
	if v := tags["addr:city"]; v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}
