package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hazard-curve-service/internal/api/handlers"
	"hazard-curve-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cache ports.Cache) http.Handler {
	mux := http.NewServeMux()

	curveHandler := &handlers.CurveHandler{Cache: cache}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/ready", &handlers.Readiness{Cache: cache})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/curves/{key}", curveHandler.ServeCurve)

	return loggingMiddleware(metricsMiddleware(mux))
}
