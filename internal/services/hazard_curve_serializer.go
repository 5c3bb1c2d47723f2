package services

import (
	"context"
	"errors"

	"hazard-curve-service/internal/domain"
	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

// HazardCurveSerializer writes hazard curves into a cache under one fixed key.
//
// Every write replaces the previous value under that key: serializing several
// curves leaves only the last one stored. The serializer holds no state besides
// the key and the cache, adds no locking, and never retries.
type HazardCurveSerializer struct {
	key   string
	cache ports.Cache
}

func NewHazardCurveSerializer(key string, cache ports.Cache) (*HazardCurveSerializer, error) {
	if key == "" {
		return nil, errors.New("hazard curve serializer: key is empty")
	}
	if cache == nil {
		return nil, errors.New("hazard curve serializer: cache is nil")
	}

	return &HazardCurveSerializer{key: key, cache: cache}, nil
}

func (s *HazardCurveSerializer) Key() string { return s.key }

// Serialize encodes curve and stores it with exactly one cache write.
// Encoding failures are returned before the cache is touched; cache
// failures are returned unchanged.
func (s *HazardCurveSerializer) Serialize(ctx context.Context, curve domain.HazardCurve) (err error) {
	defer obs.Time(ctx, "serializer.Serialize")(&err)

	text, err := curve.CanonicalEncoding()
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, s.key, text)
}

// SerializeAll serializes curves in order, one cache write each.
// It stops at the first failure; curves after it are not attempted.
func (s *HazardCurveSerializer) SerializeAll(ctx context.Context, curves []domain.HazardCurve) error {
	for _, c := range curves {
		if err := s.Serialize(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
