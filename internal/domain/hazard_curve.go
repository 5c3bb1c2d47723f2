package domain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
)

var (
	// ErrEncoding is returned when a curve cannot be turned into its canonical text.
	ErrEncoding = errors.New("hazard curve encoding failed")
	// ErrDecoding is returned when a text document is not a valid hazard curve.
	ErrDecoding = errors.New("hazard curve decoding failed")

	ErrLengthMismatch = errors.New("ground motion levels and probabilities of exceedance differ in length")
	ErrEmptyCurve     = errors.New("hazard curve has no points")
)

// Represents a hazard curve: probabilities of exceedance sampled at a sequence
// of ground motion levels, computed for one geographic site.
// A HazardCurve is an immutable value. Slices are copied on the way in and
// on the way out, so neither the producer nor a reader can change it.
type HazardCurve struct {
	lon    float64
	lat    float64
	levels []float64
	poes   []float64
}

// NewHazardCurve accepts the four values as given. Length mismatches between
// levels and poes are not rejected here; see Validate.
func NewHazardCurve(lon, lat float64, levels, poes []float64) HazardCurve {
	return HazardCurve{
		lon:    lon,
		lat:    lat,
		levels: slices.Clone(levels),
		poes:   slices.Clone(poes),
	}
}

func (c HazardCurve) Longitude() float64 { return c.lon }

func (c HazardCurve) Latitude() float64 { return c.lat }

func (c HazardCurve) Site() Coordinates { return Coordinates{Lon: c.lon, Lat: c.lat} }

// X axis sample points.
func (c HazardCurve) GroundMotionLevels() []float64 { return slices.Clone(c.levels) }

// Y axis values, one per ground motion level.
func (c HazardCurve) ProbabilitiesOfExceedance() []float64 { return slices.Clone(c.poes) }

// Equal reports value equality over all four attributes.
func (c HazardCurve) Equal(other HazardCurve) bool {
	return c.lon == other.lon &&
		c.lat == other.lat &&
		slices.Equal(c.levels, other.levels) &&
		slices.Equal(c.poes, other.poes)
}

// Validate checks that the curve describes a usable function X -> Y.
func (c HazardCurve) Validate() error {
	if len(c.levels) != len(c.poes) {
		return fmt.Errorf("validate hazard curve at %s: %w (levels=%d poes=%d)",
			c.Site(), ErrLengthMismatch, len(c.levels), len(c.poes))
	}
	if len(c.levels) == 0 {
		return fmt.Errorf("validate hazard curve at %s: %w", c.Site(), ErrEmptyCurve)
	}
	return nil
}

// ProbabilityOfExceedanceAt linearly interpolates the curve at the given level.
// Levels outside the sampled range are clipped to the nearest end point.
func (c HazardCurve) ProbabilityOfExceedanceAt(level float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(level) {
		return 0, errors.New("interpolate hazard curve: level is NaN")
	}

	idx := make([]int, len(c.levels))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(c.levels[a], c.levels[b]) })

	first, last := idx[0], idx[len(idx)-1]
	if level <= c.levels[first] {
		return c.poes[first], nil
	}
	if level >= c.levels[last] {
		return c.poes[last], nil
	}

	for k := 1; k < len(idx); k++ {
		lo, hi := idx[k-1], idx[k]
		x0, x1 := c.levels[lo], c.levels[hi]
		if level > x1 {
			continue
		}
		if x1 == x0 {
			return c.poes[hi], nil
		}
		t := (level - x0) / (x1 - x0)
		return c.poes[lo] + t*(c.poes[hi]-c.poes[lo]), nil
	}

	return c.poes[last], nil
}

// hazardCurveDocument is the canonical wire layout. Field names match the
// documents already stored by earlier producers.
type hazardCurveDocument struct {
	Longitude                 *float64  `json:"longitude"`
	Latitude                  *float64  `json:"latitude"`
	GroundMotionLevels        []float64 `json:"groundMotionLevels"`
	ProbabilitiesOfExceedance []float64 `json:"probabilitiesOfExceedance"`
}

// CanonicalEncoding returns the deterministic JSON text of the curve.
// Float64 values are written in their shortest round-trip form.
func (c HazardCurve) CanonicalEncoding() (string, error) {
	levels, poes := c.levels, c.poes
	if levels == nil {
		levels = []float64{}
	}
	if poes == nil {
		poes = []float64{}
	}

	doc := hazardCurveDocument{
		Longitude:                 &c.lon,
		Latitude:                  &c.lat,
		GroundMotionLevels:        levels,
		ProbabilitiesOfExceedance: poes,
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode hazard curve at %s: %w: %w", c.Site(), ErrEncoding, err)
	}
	return string(b), nil
}

// DecodeHazardCurve parses the canonical encoding back into a curve.
func DecodeHazardCurve(text string) (HazardCurve, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()

	var doc hazardCurveDocument
	if err := dec.Decode(&doc); err != nil {
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: %w", ErrDecoding, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: trailing data after document", ErrDecoding)
	}

	switch {
	case doc.Longitude == nil:
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: missing longitude", ErrDecoding)
	case doc.Latitude == nil:
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: missing latitude", ErrDecoding)
	case doc.GroundMotionLevels == nil:
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: missing groundMotionLevels", ErrDecoding)
	case doc.ProbabilitiesOfExceedance == nil:
		return HazardCurve{}, fmt.Errorf("decode hazard curve: %w: missing probabilitiesOfExceedance", ErrDecoding)
	}

	return HazardCurve{
		lon:    *doc.Longitude,
		lat:    *doc.Latitude,
		levels: doc.GroundMotionLevels,
		poes:   doc.ProbabilitiesOfExceedance,
	}, nil
}
