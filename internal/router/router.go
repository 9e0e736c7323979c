package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "health-companion/internal/adapters/storage/memory"
	pg "health-companion/internal/adapters/storage/postgres"
	"health-companion/internal/domain/compliance"
	"health-companion/internal/domain/healthrecords"
	"health-companion/internal/domain/hospitals"
	"health-companion/internal/domain/medications"
	"health-companion/internal/domain/posts"
	"health-companion/internal/domain/preferences"
	"health-companion/internal/middleware"
	"health-companion/internal/ports/analysis"
	"health-companion/internal/ports/auth"
	"health-companion/internal/ports/places"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "health-companion/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Colaboradores externos. Pueden ser nil: los módulos que los usan
	// responden 503 en ese caso.
	Analyzer analysis.Analyzer
	Places   places.Finder
}

// Services expone los services que el proceso necesita fuera del router
// (el trigger de notificaciones corre por cron, no por HTTP).
type Services struct {
	Medications *medications.Service
	Preferences *preferences.Service
}

func NewRouter(opts Options) (http.Handler, Services) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		medsRepo    medications.Repository
		recordsRepo healthrecords.Repository
		postsRepo   posts.Repository
		prefsRepo   preferences.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		medsRepo = pg.NewMedicationsRepo(db)
		recordsRepo = pg.NewHealthRecordsRepo(db)
		postsRepo = pg.NewPostsRepo(db)
		prefsRepo = pg.NewPreferencesRepo(db)
	} else {
		medsRepo = mem.NewMedicationsRepo()
		recordsRepo = mem.NewHealthRecordsRepo()
		postsRepo = mem.NewPostsRepo()
		prefsRepo = mem.NewPreferencesRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medsRepo)
	recordsSvc := healthrecords.NewService(recordsRepo, opts.Analyzer)
	postsSvc := posts.NewService(postsRepo)
	prefsSvc := preferences.NewService(prefsRepo)
	hospitalsSvc := hospitals.NewService(opts.Places)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	compliance.RegisterRoutes(r, medsSvc)
	healthrecords.RegisterRoutes(r, recordsSvc)
	posts.RegisterRoutes(r, postsSvc)
	preferences.RegisterRoutes(r, prefsSvc)
	hospitals.RegisterRoutes(r, hospitalsSvc)

	return r, Services{
		Medications: medsSvc,
		Preferences: prefsSvc,
	}
}
