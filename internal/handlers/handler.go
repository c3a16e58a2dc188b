package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaughan-dsouza/medvault/internal/logging"
	"github.com/vaughan-dsouza/medvault/internal/metrics"
	"github.com/vaughan-dsouza/medvault/internal/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Auth        AuthService
	DB          Pinger
	Metrics     *metrics.Auth
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
	CORSOrigins []string
}

type Handler struct {
	Auth   *AuthHandler
	Health *HealthHandler
}

func NewHandler(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Auth:   NewAuthHandler(d.Auth, d.Metrics, log),
		Health: NewHealthHandler(d.DB),
	}
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) http.Handler {
	h := NewHandler(d)
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.CORSOrigins))

	r.Get("/healthz", h.Health.Check)
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		// Public
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Get("/validate", h.Auth.Validate)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.Auth))

			r.Get("/me", h.Auth.Me)
		})
	})

	return r
}
