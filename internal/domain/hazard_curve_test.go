package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func sampleCurveAtSite(lon, lat float64) HazardCurve {
	// X sample values
	levels := []float64{1.0, 2.0, 3.0, 4.0}
	// Y values
	poes := []float64{1.0, 2.0, 3.0, 4.0}
	return NewHazardCurve(lon, lat, levels, poes)
}

func TestHazardCurveRoundTrip(t *testing.T) {
	curves := []HazardCurve{
		sampleCurveAtSite(1.0, 2.0),
		NewHazardCurve(-122.4194, 37.7749,
			[]float64{0.005, 0.007, 0.0098, 0.0137, 0.0192, 0.0269, 0.0376},
			[]float64{0.99, 0.97, 0.93, 0.86, 0.75, 0.61, 0.45}),
		NewHazardCurve(0.1+0.2, -0.0, []float64{1e-300, math.MaxFloat64}, []float64{math.SmallestNonzeroFloat64, 1.0 / 3.0}),
		NewHazardCurve(10, 45, nil, nil),
	}

	for _, want := range curves {
		text, err := want.CanonicalEncoding()
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}

		got, err := DecodeHazardCurve(text)
		if err != nil {
			t.Fatalf("unexpected decode error for %s: %v", text, err)
		}

		if !got.Equal(want) {
			t.Errorf("round trip = %+v, want %+v", got, want)
		}
	}
}

func TestHazardCurveEncodingStability(t *testing.T) {
	curve := sampleCurveAtSite(1.0, 2.0)

	text, err := curve.CanonicalEncoding()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"longitude":1,"latitude":2,"groundMotionLevels":[1,2,3,4],"probabilitiesOfExceedance":[1,2,3,4]}`
	if text != want {
		t.Fatalf("encoding = %s, want %s", text, want)
	}

	again, _ := curve.CanonicalEncoding()
	if again != text {
		t.Fatalf("encoding is not deterministic: %s vs %s", again, text)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatalf("encoding is not a JSON document: %v", err)
	}

	got, err := DecodeHazardCurve(text)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got.Longitude() != 1.0 || got.Latitude() != 2.0 {
		t.Errorf("site = %s, want 1.00000 2.00000", got.Site())
	}
	for i, v := range []float64{1.0, 2.0, 3.0, 4.0} {
		if got.GroundMotionLevels()[i] != v {
			t.Errorf("level[%d] = %v, want %v", i, got.GroundMotionLevels()[i], v)
		}
		if got.ProbabilitiesOfExceedance()[i] != v {
			t.Errorf("poe[%d] = %v, want %v", i, got.ProbabilitiesOfExceedance()[i], v)
		}
	}
}

func TestHazardCurveEqual(t *testing.T) {
	a := sampleCurveAtSite(1.0, 2.0)

	if !a.Equal(sampleCurveAtSite(1.0, 2.0)) {
		t.Error("identical curves should be equal")
	}
	if a.Equal(sampleCurveAtSite(2.0, 2.0)) {
		t.Error("curves at different longitudes should differ")
	}
	if a.Equal(NewHazardCurve(1.0, 2.0, []float64{1, 2, 3, 4}, []float64{4, 3, 2, 1})) {
		t.Error("curves with different poes should differ")
	}
	if a.Equal(NewHazardCurve(1.0, 2.0, []float64{4, 3, 2, 1}, []float64{1, 2, 3, 4})) {
		t.Error("order of levels is significant")
	}
	if !NewHazardCurve(0, 0, nil, nil).Equal(NewHazardCurve(0, 0, []float64{}, []float64{})) {
		t.Error("nil and empty sequences should be equal")
	}
}

func TestHazardCurveIsImmutable(t *testing.T) {
	levels := []float64{1, 2}
	poes := []float64{0.5, 0.1}
	curve := NewHazardCurve(0, 0, levels, poes)

	levels[0] = 99
	poes[0] = 99
	if curve.GroundMotionLevels()[0] != 1 || curve.ProbabilitiesOfExceedance()[0] != 0.5 {
		t.Fatal("curve changed after the caller mutated its input slices")
	}

	out := curve.GroundMotionLevels()
	out[1] = 99
	if curve.GroundMotionLevels()[1] != 2 {
		t.Fatal("curve changed after the caller mutated an accessor result")
	}
}

func TestHazardCurveEncodingRejectsNonFinite(t *testing.T) {
	curves := []HazardCurve{
		NewHazardCurve(math.NaN(), 0, []float64{1}, []float64{1}),
		NewHazardCurve(0, math.Inf(1), []float64{1}, []float64{1}),
		NewHazardCurve(0, 0, []float64{math.Inf(-1)}, []float64{1}),
		NewHazardCurve(0, 0, []float64{1}, []float64{math.NaN()}),
	}

	for _, c := range curves {
		if _, err := c.CanonicalEncoding(); !errors.Is(err, ErrEncoding) {
			t.Errorf("encode %+v: err = %v, want ErrEncoding", c, err)
		}
	}
}

func TestDecodeHazardCurveRejectsMalformed(t *testing.T) {
	docs := map[string]string{
		"not json":         `CURVE`,
		"unknown field":    `{"longitude":1,"latitude":2,"groundMotionLevels":[],"probabilitiesOfExceedance":[],"imt":"PGA"}`,
		"trailing data":    `{"longitude":1,"latitude":2,"groundMotionLevels":[],"probabilitiesOfExceedance":[]} {}`,
		"missing lat":      `{"longitude":1,"groundMotionLevels":[],"probabilitiesOfExceedance":[]}`,
		"missing levels":   `{"longitude":1,"latitude":2,"probabilitiesOfExceedance":[]}`,
		"null poes":        `{"longitude":1,"latitude":2,"groundMotionLevels":[],"probabilitiesOfExceedance":null}`,
		"string in list":   `{"longitude":1,"latitude":2,"groundMotionLevels":["1"],"probabilitiesOfExceedance":[1]}`,
		"array not object": `[1,2,3]`,
	}

	for name, doc := range docs {
		if _, err := DecodeHazardCurve(doc); !errors.Is(err, ErrDecoding) {
			t.Errorf("%s: err = %v, want ErrDecoding", name, err)
		}
	}
}

func TestHazardCurveValidate(t *testing.T) {
	if err := sampleCurveAtSite(1, 2).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mismatch := NewHazardCurve(1, 2, []float64{1, 2, 3}, []float64{0.5})
	if err := mismatch.Validate(); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}

	// Mismatched curves are still encodable: the constructor and encoder do not enforce lengths.
	if _, err := mismatch.CanonicalEncoding(); err != nil {
		t.Errorf("unexpected encode error: %v", err)
	}

	if err := NewHazardCurve(1, 2, nil, nil).Validate(); !errors.Is(err, ErrEmptyCurve) {
		t.Errorf("err = %v, want ErrEmptyCurve", err)
	}
}

func TestProbabilityOfExceedanceAt(t *testing.T) {
	curve := NewHazardCurve(0, 0,
		[]float64{0.1, 0.2, 0.4},
		[]float64{0.9, 0.5, 0.1})

	tests := []struct {
		level float64
		want  float64
	}{
		{level: 0.1, want: 0.9},
		{level: 0.15, want: 0.7},
		{level: 0.3, want: 0.3},
		{level: 0.4, want: 0.1},
		{level: 0.01, want: 0.9}, // clipped below
		{level: 2.0, want: 0.1},  // clipped above
	}

	for _, tt := range tests {
		got, err := curve.ProbabilityOfExceedanceAt(tt.level)
		if err != nil {
			t.Fatalf("level %v: unexpected error: %v", tt.level, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PoE at %v = %v, want %v", tt.level, got, tt.want)
		}
	}

	if _, err := curve.ProbabilityOfExceedanceAt(math.NaN()); err == nil {
		t.Error("expected error for NaN level")
	}

	unsorted := NewHazardCurve(0, 0, []float64{0.4, 0.1, 0.2}, []float64{0.1, 0.9, 0.5})
	got, err := unsorted.ProbabilityOfExceedanceAt(0.15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.7) > 1e-12 {
		t.Errorf("PoE at 0.15 on unsorted levels = %v, want 0.7", got)
	}

	if _, err := NewHazardCurve(0, 0, []float64{1, 2}, []float64{1}).ProbabilityOfExceedanceAt(1); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestCoordinatesString(t *testing.T) {
	if got := (Coordinates{Lon: 1, Lat: -2.123456}).String(); got != "1.00000 -2.12346" {
		t.Errorf("String() = %q, want %q", got, "1.00000 -2.12346")
	}
}
