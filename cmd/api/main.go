package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-companion/internal/adapters/analysis"
	"health-companion/internal/adapters/auth/identity"
	"health-companion/internal/adapters/notify/lognotify"
	"health-companion/internal/adapters/notify/webhook"
	"health-companion/internal/adapters/places/overpass"
	"health-companion/internal/notifier"
	"health-companion/internal/platform/logger"
	portanalysis "health-companion/internal/ports/analysis"
	"health-companion/internal/ports/auth"
	"health-companion/internal/ports/notify"
	portplaces "health-companion/internal/ports/places"
	"health-companion/internal/router"
)

// @title Health Companion API
// @version 1.0
// @description Gestión de medicamentos, adherencia y recordatorios.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Verifier de identidad: sin IDENTITY_BASE_URL corre en modo dev
	// (header X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if base := os.Getenv("IDENTITY_BASE_URL"); base != "" {
		client, err := identity.NewClient(identity.Config{
			BaseURL: base,
			APIKey:  os.Getenv("IDENTITY_API_KEY"),
		})
		if err != nil {
			log.Error("identity client", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = identity.NewVerifier(client)
	} else {
		log.Warn("auth en modo dev (sin IDENTITY_BASE_URL)", nil)
	}

	var analyzer portanalysis.Analyzer
	if base := os.Getenv("ANALYZER_BASE_URL"); base != "" {
		client, err := analysis.NewClient(analysis.Config{
			BaseURL: base,
			APIKey:  os.Getenv("ANALYZER_API_KEY"),
		})
		if err != nil {
			log.Error("analysis client", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		analyzer = client
	}

	var finder portplaces.Finder
	if base := os.Getenv("OVERPASS_BASE_URL"); base != "" {
		finder = overpass.New(overpass.Config{BaseURL: base})
	}

	r, svcs := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Analyzer:     analyzer,
		Places:       finder,
	})

	// Sink de notificaciones: webhook real si está configurado, logger si no.
	var sink notify.Notifier
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		sink = webhook.New(webhook.Config{URL: url})
	} else {
		sink = lognotify.New(log)
	}

	checker := notifier.NewChecker(svcs.Medications, svcs.Preferences, sink, log)
	sched, err := notifier.NewScheduler(checker, log)
	if err != nil {
		log.Error("scheduler", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", map[string]any{"error": err.Error()})
		}
	}
}
