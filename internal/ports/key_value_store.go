package ports

import "context"

// UpdateFunc receives the current value (ok=false when the key is absent)
// and returns the value to store.
type UpdateFunc func(current string, ok bool) (string, error)

// Contract for a string key-value medium addressed by well-known keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Atomically read-modify-write a single key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
