// Package metadata implements the client's durable key/value store. The
// session store persists exactly two keys here (identity and token); both
// absent means logged out.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
