// Package notifier implementa el trigger de recordatorios de medicación:
// un chequeo por minuto que cruza el reloj contra los horarios de dosis y
// despacha a la facility de notificaciones.
package notifier

import (
	"context"
	"errors"
	"time"

	"health-companion/internal/domain/medications"
	"health-companion/internal/domain/preferences"
	"health-companion/internal/platform/logger"
	"health-companion/internal/ports/notify"
)

// Checker recorre las medicaciones de todos los usuarios una vez por tick.
// No muta taken-state nunca: solo avisa.
type Checker struct {
	meds  *medications.Service
	prefs *preferences.Service
	sink  notify.Notifier
	log   logger.Logger
	now   func() time.Time

	// notified: medicationID -> "fecha reloj" del último slot avisado.
	// Garantiza a lo sumo un despacho por (medicación, fecha, minuto) aunque
	// el poll corra varias veces en el mismo minuto; el Tag de la
	// notificación cubre la de-dup del lado de la facility.
	notified map[string]string

	// permissionDenied: la facility negó el permiso; degradamos a log una
	// sola vez y no volvemos a intentar en cada tick.
	permissionDenied bool
}

func NewChecker(meds *medications.Service, prefs *preferences.Service, sink notify.Notifier, log logger.Logger) *Checker {
	return &Checker{
		meds:     meds,
		prefs:    prefs,
		sink:     sink,
		log:      log,
		now:      time.Now,
		notified: make(map[string]string),
	}
}

// Check corre un ciclo: para cada dueño, para cada medicación con horario
// que coincide con el minuto actual y sin registro para hoy, despacha una
// notificación. Fallas por medicación se aíslan: un registro malo no frena
// el lote.
func (c *Checker) Check(ctx context.Context) {
	if c.permissionDenied {
		return
	}

	now := c.now()
	clock := now.Format(medications.TimeLayout)
	today := now.Format(medications.DateLayout)
	slot := today + " " + clock

	owners, err := c.meds.ListOwners(ctx)
	if err != nil {
		c.log.Warn("notifier: list owners failed", map[string]any{"error": err.Error()})
		return
	}

	for _, owner := range owners {
		if p, err := c.prefs.Get(ctx, owner); err == nil && !p.RemindersEnabled {
			continue
		}

		meds, err := c.meds.ListByOwner(ctx, owner)
		if err != nil {
			c.log.Warn("notifier: list medications failed", map[string]any{
				"owner": owner,
				"error": err.Error(),
			})
			continue
		}

		for _, m := range meds {
			if !m.DueAt(clock) {
				continue
			}
			if m.TakenOn(today) != medications.TakenStateUnrecorded {
				continue
			}
			if c.notified[m.ID] == slot {
				continue
			}

			err := c.sink.Notify(ctx, notify.Notification{
				Title: "Medication Reminder",
				Body:  "Time to take " + m.Name,
				Tag:   "med-" + m.ID,
			})
			if errors.Is(err, notify.ErrPermissionDenied) {
				c.permissionDenied = true
				c.log.Warn("notifier: permission denied, reminders disabled", nil)
				return
			}
			if err != nil {
				c.log.Warn("notifier: dispatch failed", map[string]any{
					"medication_id": m.ID,
					"error":         err.Error(),
				})
				continue
			}

			c.notified[m.ID] = slot
			c.log.Debug("notifier: reminder dispatched", map[string]any{
				"medication_id": m.ID,
				"slot":          slot,
			})
		}
	}
}
