package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hazard-curve-service/internal/api/dto"
	"hazard-curve-service/internal/domain"
	"hazard-curve-service/internal/ports"
	"hazard-curve-service/internal/services"
)

const maxBodyBytes = 8 << 20

// CurveHandler stores and reads hazard curves under caller-chosen keys.
type CurveHandler struct {
	Cache ports.Cache
}

// ServeCurve dispatches /curves/{key} by method.
func (h *CurveHandler) ServeCurve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut:
		h.Put(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Put serializes one curve (JSON object) or several (JSON array) under the key.
// Curves are written in order, so only the last one remains readable.
func (h *CurveHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	if err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, "body too large")
		return
	}

	curves, err := dto.ParseHazardCurves(body)
	switch {
	case errors.Is(err, domain.ErrLengthMismatch), errors.Is(err, domain.ErrEmptyCurve):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	serializer, err := services.NewHazardCurveSerializer(key, h.Cache)
	if err != nil {
		writeCacheError(w, r, "serialize", err)
		return
	}

	if err := serializer.SerializeAll(r.Context(), curves); err != nil {
		writeCacheError(w, r, "serialize", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SerializeResponse{Key: serializer.Key(), Stored: len(curves)})
}

// Get returns the curve stored under the key. With ?level=x it also returns
// the interpolated probability of exceedance at that ground motion level.
func (h *CurveHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	var level *float64
	if raw := r.URL.Query().Get("level"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "level must be a number")
			return
		}
		level = &v
	}

	curve, found, err := services.LoadHazardCurve(r.Context(), h.Cache, key)
	if err != nil {
		writeCacheError(w, r, "load", err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "curve not found")
		return
	}

	res := dto.HazardCurveResponse{
		Key:                       key,
		Longitude:                 curve.Longitude(),
		Latitude:                  curve.Latitude(),
		GroundMotionLevels:        curve.GroundMotionLevels(),
		ProbabilitiesOfExceedance: curve.ProbabilitiesOfExceedance(),
	}

	if level != nil {
		poe, err := curve.ProbabilityOfExceedanceAt(*level)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		res.Level = level
		res.ProbabilityOfExceedance = &poe
	}

	writeJSON(w, r, http.StatusOK, res)
}
