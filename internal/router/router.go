package router

import (
	"database/sql"
	"net/http"

	mem "nicu-progress/internal/adapters/storage/memory"
	pg "nicu-progress/internal/adapters/storage/postgres"
	_ "nicu-progress/internal/docs"
	"nicu-progress/internal/domain/entries"
	"nicu-progress/internal/domain/patients"
	"nicu-progress/internal/domain/progress"
	"nicu-progress/internal/domain/session"
	"nicu-progress/internal/middleware"
	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/platform/metrics"
	"nicu-progress/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Login/refresh. Si Tokens o Credentials son nil no se exponen /token*.
	Tokens      auth.TokenIssuer
	Credentials auth.CredentialChecker

	// Opcional: si viene, usa Postgres (ya migrado). Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger    // default: Nop
	Metrics *metrics.Metrics // default: registry nuevo
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log, m))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		patientRepo patients.Repository
		entryRepo   entries.Repository
	)
	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		entryRepo = pg.NewEntriesRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		entryRepo = mem.NewEntryRepo()
	}

	// Services por módulo
	entriesSvc := entries.NewService(entryRepo, patientRepo)
	patientsSvc := patients.NewService(patientRepo, entriesSvc)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	entries.RegisterRoutes(r, entriesSvc, m)
	progress.RegisterRoutes(r, patientsSvc, log, m)

	if opts.Tokens != nil && opts.Credentials != nil {
		session.RegisterRoutes(r, session.NewService(opts.Credentials, opts.Tokens), log)
	}

	return r
}
