package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/serrano-dashboard/internal/handlers"
	"github.com/GregMSThompson/serrano-dashboard/internal/metrics"
	"github.com/GregMSThompson/serrano-dashboard/internal/middleware"
)

type Options struct {
	// CORSOrigins lists browser origins allowed to call the API. Empty
	// disables CORS headers entirely.
	CORSOrigins []string
	// Auth guards /dashboard. Nil falls back to middleware.NoAuth.
	Auth    func(http.Handler) http.Handler
	Metrics *metrics.Metrics
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
	}
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	auth := opts.Auth
	if auth == nil {
		auth = middleware.NoAuth
	}

	dh := handlers.NewDashboardHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	return r
}

// corsOptions only allows credentials for an explicit origin list.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}
