package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"hazard-curve-service/internal/domain"
	"hazard-curve-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path, "error": err}).Warn("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeCacheError maps the cache and curve error taxonomy onto HTTP statuses.
func writeCacheError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.WithFields(log.Fields{"op": op, "error": err}).Error("request failed")

	switch {
	case errors.Is(err, ports.ErrConnection):
		writeError(w, r, http.StatusServiceUnavailable, "cache unavailable")
	case errors.Is(err, ports.ErrStorage):
		writeError(w, r, http.StatusBadGateway, "cache rejected the operation")
	case errors.Is(err, domain.ErrEncoding):
		writeError(w, r, http.StatusUnprocessableEntity, "curve cannot be encoded")
	case errors.Is(err, domain.ErrDecoding):
		writeError(w, r, http.StatusInternalServerError, "stored curve is not readable")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
