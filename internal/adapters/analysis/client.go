// Package analysis es el cliente del servicio externo de análisis de
// documentos (resumen asistido por AI). El formato de wire del proveedor no
// es contrato de este servicio.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"health-companion/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("analysis client not configured")
	ErrAnalysisFailed = errors.New("document analysis failed")
	// ErrTimedOut: se agotaron los intentos de polling. Falla terminal, el
	// caller no debe asumir que el análisis sigue corriendo.
	ErrTimedOut = errors.New("document analysis timed out")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Polling acotado: intentos fijos con delay fijo, sin backoff.
	PollAttempts int
	PollDelay    time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string

	pollAttempts int
	pollDelay    time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	attempts := cfg.PollAttempts
	if attempts <= 0 {
		attempts = 10
	}
	delay := cfg.PollDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		pollAttempts: attempts,
		pollDelay:    delay,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// Summarize implementa analysis.Analyzer: somete el documento y hace
// polling del job hasta done/failed o hasta agotar los intentos.
func (c *Client) Summarize(ctx context.Context, fileURL string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return "", errors.New("file url required")
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	var submitted struct {
		ID string `json:"id"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/analyses", headers,
		map[string]string{"file_url": fileURL}, &submitted)
	if err != nil {
		return "", fmt.Errorf("submit analysis: %w", err)
	}
	if strings.TrimSpace(submitted.ID) == "" {
		return "", errors.New("analysis response missing id")
	}

	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollDelay):
		}

		var job struct {
			Status  string `json:"status"`
			Summary string `json:"summary"`
			Error   string `json:"error"`
		}
		err := c.http.DoJSON(ctx, http.MethodGet, "/v1/analyses/"+submitted.ID, headers, nil, &job)
		if err != nil {
			return "", fmt.Errorf("poll analysis: %w", err)
		}

		switch job.Status {
		case "done":
			return job.Summary, nil
		case "failed":
			if job.Error != "" {
				return "", fmt.Errorf("%w: %s", ErrAnalysisFailed, job.Error)
			}
			return "", ErrAnalysisFailed
		}
		// pending/processing: siguiente intento
	}

	return "", ErrTimedOut
}
