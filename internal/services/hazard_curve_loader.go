package services

import (
	"context"
	"fmt"

	"hazard-curve-service/internal/domain"
	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

// LoadHazardCurve reads the curve stored under key.
// found is false when the cache holds nothing for key.
func LoadHazardCurve(
	ctx context.Context,
	cache ports.Cache,
	key string,
) (_ domain.HazardCurve, found bool, err error) {
	defer obs.Time(ctx, "loader.LoadHazardCurve")(&err)

	text, found, err := cache.Get(ctx, key)
	if err != nil {
		return domain.HazardCurve{}, false, fmt.Errorf("load hazard curve key=%q: %w", key, err)
	}
	if !found {
		return domain.HazardCurve{}, false, nil
	}

	curve, err := domain.DecodeHazardCurve(text)
	if err != nil {
		return domain.HazardCurve{}, false, fmt.Errorf("load hazard curve key=%q: %w", key, err)
	}

	return curve, true, nil
}
