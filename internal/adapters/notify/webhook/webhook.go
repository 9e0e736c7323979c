// Package webhook entrega notificaciones posteando JSON a un endpoint
// configurado (gateway de push, bot, etc.).
package webhook

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"health-companion/internal/platform/httpclient"
	"health-companion/internal/ports/notify"
)

var (
	ErrNotConfigured = errors.New("webhook notifier not configured")
)

type Config struct {
	URL     string
	Timeout time.Duration
}

type Notifier struct {
	url  string
	http *httpclient.Client
}

func New(cfg Config) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		url:  strings.TrimSpace(cfg.URL),
		http: httpclient.New(timeout),
	}
}

func (n *Notifier) IsConfigured() bool {
	return n != nil && n.url != ""
}

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

func (n *Notifier) Notify(ctx context.Context, notif notify.Notification) error {
	if !n.IsConfigured() {
		return ErrNotConfigured
	}

	err := n.http.DoJSON(ctx, http.MethodPost, n.url, nil, payload{
		Title: notif.Title,
		Body:  notif.Body,
		Tag:   notif.Tag,
	}, nil)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			// Credenciales revocadas del lado del gateway: el trigger debe
			// degradar y dejar de intentar.
			if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
				return notify.ErrPermissionDenied
			}
		}
		return err
	}
	return nil
}
