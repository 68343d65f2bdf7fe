// Package metadata is the console's durable key/value slot set, the terminal
// counterpart of browser localStorage.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys.
type Repository interface {
	// Get returns found=false, not an error, when key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
