package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"hazard-curve-service/internal/ports"
)

var _ ports.Flusher = (*MemoryCache)(nil)

// MemoryCache is an in-process Cache for local runs and tests.
// It never fails and never expires items.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.store.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, found := m.store.Get(key)
	if !found {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.store.Flush()
	return nil
}
