// Package lognotify es el notifier de desarrollo: escribe la notificación
// al logger en vez de mandarla a una facility real.
package lognotify

import (
	"context"

	"health-companion/internal/platform/logger"
	"health-companion/internal/ports/notify"
)

type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Notify(ctx context.Context, notif notify.Notification) error {
	n.log.Info("notification", map[string]any{
		"title": notif.Title,
		"body":  notif.Body,
		"tag":   notif.Tag,
	})
	return nil
}
