// Package metadata is the key/value store of the device-local database. The
// board collection, the signed-in user name and the refresh token all live
// here under well-known keys.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyUsername     = "username"
	KeyRefreshToken = "refresh_token"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key; GetMany leaves missing keys out of the map.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys; unknown keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
