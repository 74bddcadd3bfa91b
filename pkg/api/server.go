// Package api exposes a record store over a small REST surface for
// operators: key listing, record inspection, eviction, and store
// statistics, plus Prometheus metrics. The persistence layer itself
// stays network-free; this package is consumed only by the serve
// command.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the chi router for the given server
func Router(server *Server) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(server.config.APIKey, server.metrics))

		m := server.metrics
		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/keys", m.InstrumentHandler("GET", "/api/v1/keys", server.handleListKeys))
		r.Get("/records/{key}", m.InstrumentHandler("GET", "/api/v1/records/{key}", server.handleGetRecord))
		r.Delete("/records/{key}", m.InstrumentHandler("DELETE", "/api/v1/records/{key}", server.handleEvict))
		r.Delete("/records", m.InstrumentHandler("DELETE", "/api/v1/records", server.handleEvictAll))
		r.Get("/stats", m.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(store Store, config ServerConfig, logger *slog.Logger) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(store, config, metrics, logger)

	r := Router(server)

	// Keep the store gauges fresh for scrapes
	go server.startMetricsUpdater(15 * time.Second)

	addr := fmt.Sprintf(":%d", config.Port)
	server.logger.Info("starting muninn REST API server", "addr", addr)

	return http.ListenAndServe(addr, r)
}
