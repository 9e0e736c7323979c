package notifier

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"health-companion/internal/platform/logger"
)

const checkTimeout = 30 * time.Second

// Scheduler corre el Checker al minuto exacto vía cron, alineado con la
// resolución del matcher. El handle es dueño del timer: Stop en teardown
// para no filtrar el ticker.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func NewScheduler(checker *Checker, log logger.Logger) (*Scheduler, error) {
	c := cron.New()

	// "* * * * *": cada minuto en el segundo :00. Sin garantía de precisión:
	// si el proceso duerme ese minuto, el slot se pierde y no se dispara
	// retroactivamente.
	_, err := c.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		checker.Check(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.log.Info("notification scheduler started", nil)
	s.cron.Start()
}

// Stop frena el cron y espera a que termine el chequeo en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("notification scheduler stopped", nil)
}
