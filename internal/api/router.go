package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ngo-directory-service/internal/api/handlers"
	"ngo-directory-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.NgoRepository, reg *prometheus.Registry) http.Handler {
	return newRouter(handlers.NewNgoHandler(repo), reg)
}

func newRouter(ngoHandler *handlers.NgoHandler, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware(newMetrics(reg)))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/ngos", ngoHandler.List)
	r.Post("/ngos", ngoHandler.Create)
	r.Get("/ngos/{id}", ngoHandler.Get)

	return r
}
