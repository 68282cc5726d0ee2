package ports

import (
	"context"
	"time"
)

// LockStore is a shared key/value store holding one owner per key with a
// TTL. It must be reachable by every engine instance.
type LockStore interface {
	// Acquire sets key to owner with the given TTL only if the key is
	// absent. Contention returns false and a nil error.
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	// Release deletes key if it is still owned by owner. Missing keys and
	// keys owned by someone else are left alone.
	Release(ctx context.Context, key, owner string) error
	Owner(ctx context.Context, key string) (string, bool, error)
}
