// Package cache provides the key-value store backing session and upload
// records. Values are JSON blobs; every write carries the store's default TTL
// unless an explicit one is given, so records expire on their own when a flow
// is abandoned.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is absent or its TTL has lapsed.
// Callers treat both cases identically ("expired"); invalidation never
// deletes a key, so absence only ever means expiry.
var ErrNotFound = errors.New("cache: key not found")

// Store defines the interface for record persistence.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound when the key
	// is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes a value with the store's default TTL.
	Set(ctx context.Context, key string, value []byte) error

	// SetTTL writes a value with an explicit TTL.
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
