package domain

import "context"

// LocalCache is the on-device style key-value cache the store keeps warm.
// Values are serialized collections and are always replaced wholesale.
type LocalCache interface {
	// Get returns ErrCacheMiss when the key is absent
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}
