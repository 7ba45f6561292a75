package repository

import "context"

// KeyValueRepository persists opaque blobs under string keys
type KeyValueRepository interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
