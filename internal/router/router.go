package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huduglue/watchtower/internal/handler"
	customMiddleware "github.com/huduglue/watchtower/internal/middleware"
)

func NewRouter(
	monitors *handler.MonitorHandler,
	expirations *handler.ExpirationHandler,
	health *handler.HealthHandler,
	jwtSecret string,
) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(customMiddleware.MetricsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Organization-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.AuthMiddleware(jwtSecret))

		r.Route("/monitors", func(r chi.Router) {
			r.Get("/", monitors.List)
			r.Post("/", monitors.Create)
			r.Get("/{id}", monitors.GetByID)
			r.Put("/{id}", monitors.Update)
			r.Delete("/{id}", monitors.Delete)
			r.Post("/{id}/check", monitors.TriggerCheck)
		})

		r.Route("/expirations", func(r chi.Router) {
			r.Get("/", expirations.List)
			r.Post("/", expirations.Create)
			r.Get("/upcoming", expirations.ListUpcoming)
			r.Delete("/{id}", expirations.Delete)
		})
	})

	// Health & Readiness Routes
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
