package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"hazard-curve-service/internal/domain"
)

// ErrMalformedRequest marks input that is not a curve document at all.
// Curves that parse but fail HazardCurve.Validate wrap the domain errors instead.
var ErrMalformedRequest = errors.New("malformed hazard curve request")

// ParseHazardCurves reads one curve object or a JSON array of them and returns
// validated curves in input order. Unknown fields and trailing data are rejected.
func ParseHazardCurves(body []byte) ([]domain.HazardCurve, error) {
	reqs, err := decodeCurveRequests(body)
	if err != nil {
		return nil, err
	}

	curves := make([]domain.HazardCurve, 0, len(reqs))
	for i, req := range reqs {
		if req.Longitude == nil || req.Latitude == nil {
			return nil, fmt.Errorf("curve %d: %w: longitude and latitude are required", i, ErrMalformedRequest)
		}

		c := domain.NewHazardCurve(*req.Longitude, *req.Latitude, req.GroundMotionLevels, req.ProbabilitiesOfExceedance)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		curves = append(curves, c)
	}

	return curves, nil
}

func decodeCurveRequests(body []byte) ([]HazardCurveRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrMalformedRequest)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var reqs []HazardCurveRequest
	if trimmed[0] == '[' {
		if err := dec.Decode(&reqs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
	} else {
		var one HazardCurveRequest
		if err := dec.Decode(&one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		reqs = append(reqs, one)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: body must contain only one JSON value", ErrMalformedRequest)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one curve is required", ErrMalformedRequest)
	}

	return reqs, nil
}
