//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks
package ports

import (
	"context"
	"errors"
)

var (
	// ErrConnection marks failures to reach the remote store.
	ErrConnection = errors.New("cache unreachable")
	// ErrStorage marks writes or reads the remote store rejected.
	ErrStorage = errors.New("cache rejected operation")
)

// Port: string key -> string value store holding serialized results.
// Set overwrites any existing value. Implementations do not retry.
type Cache interface {
	// Store value under key. Errors match ErrConnection or ErrStorage.
	Set(ctx context.Context, key string, value string) error
	// Return the most recent value for key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
}
