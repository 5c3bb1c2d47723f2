package handlers

import (
	"net/http"

	"hazard-curve-service/internal/ports"
)

// Probed with Get only; a miss is the expected answer.
const readinessProbeKey = "hazard_curve_service_ready"

// Health reports process liveness without touching the cache.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the cache answers a read.
type Readiness struct {
	Cache ports.Cache
}

func (h *Readiness) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, _, err := h.Cache.Get(r.Context(), readinessProbeKey); err != nil {
		writeCacheError(w, r, "readiness probe", err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
