package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/gridiron-lab/nfl-data/internal/api/handler"
	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/metrics"
	"github.com/gridiron-lab/nfl-data/internal/service"
)

// Options wires the router's collaborators. DB and Metrics may be nil.
type Options struct {
	Service *service.Service
	Cache   cache.Store
	Config  *config.Config
	DB      handler.Pinger
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(opts Options) *chi.Mux {
	cfg := opts.Config
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "X-Row-Count", "Content-Disposition"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	deps := handler.Deps{
		Service: opts.Service,
		Cache:   opts.Cache,
		Config:  cfg,
		DB:      opts.DB,
		Logger:  opts.Logger,
	}
	if opts.Metrics != nil {
		deps.Observer = opts.Metrics
	}
	h := handler.New(deps)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// Raw dataset explorer
		r.Get("/datasets", h.ListDatasets)
		r.Get("/datasets/{datasetID}/schema", h.GetDatasetSchema)
		r.Get("/datasets/{datasetID}/data", h.GetDatasetData)

		// Players
		r.Get("/players", h.GetPlayers)
		r.Get("/players/export", h.ExportPlayers)
		r.Get("/players/{playerID}", h.GetPlayer)

		// Teams
		r.Get("/teams/aggregates", h.GetTeamAggregates)
		r.Get("/teams/meta", h.GetTeamsMeta)
		r.Get("/teams/{abbr}", h.GetTeam)
		r.Get("/league", h.GetLeague)

		// Stats
		r.Get("/leaders", h.GetLeaders)
		r.Get("/stats/categories", h.GetStatCategories)

		r.Post("/cache/clear", h.ClearCache)
	})

	return r
}
