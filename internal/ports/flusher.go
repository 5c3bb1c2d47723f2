package ports

import "context"

// Optional extension of Cache for backends that can drop every stored value.
// Used by tooling and test setup only.
type Flusher interface {
	Cache
	Flush(ctx context.Context) error
}
