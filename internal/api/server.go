package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-sim/internal/api/handler"
	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/cache"
	"github.com/albapepper/scoracle-sim/internal/config"
	"github.com/albapepper/scoracle-sim/internal/session"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(sessions *session.Manager, store archive.Store, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(AccessLogMiddleware(logger))
	r.Use(middleware.Recoverer)

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Location", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(sessions, store, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Get("/", h.HealthCheck)
		r.Get("/archive", h.HealthCheckArchive)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", h.GetOptions)

		// Archive
		r.With(middleware.Compress(5)).Get("/archive", h.ListArchive)

		// Sessions
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/", h.ListSessions)

			r.Route("/{id}", func(r chi.Router) {
				// The websocket route must not be wrapped by the gzip
				// writer, so compression is applied per route.
				r.Get("/ws", h.WatchSession)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Compress(5))
					r.Get("/", h.GetSession)
					r.Delete("/", h.EndSession)
					r.Get("/charts", h.GetCharts)

					// Transitions
					r.Post("/start", h.StartMatch)
					r.Post("/play", h.SimulatePlay)
					r.Post("/quarter", h.AdvanceQuarter)
					r.Post("/reset", h.ResetMatch)
				})
			})
		})
	})

	return r
}
