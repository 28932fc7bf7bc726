// Package cache provides the read-through caching layer used by the PokeAPI
// repositories: deterministic key derivation, JSON value transport, and a
// generic fetch-or-populate helper over a pluggable key-value provider.
package cache

import (
	"context"
	"time"
)

// Provider is a key-value store with per-entry TTL support.
// Implementations must treat a missing key as a clean miss (found=false,
// err=nil); a non-nil error always means the store itself is unreachable.
type Provider interface {
	// Connect establishes or verifies the connection to the backing store.
	Connect(ctx context.Context) error

	// Close releases the connection. Safe to call more than once.
	Close() error

	// Get returns the value stored under key. found is false when the key
	// does not exist or has expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key. A ttl of zero means the entry never
	// expires. A write fully replaces any previous value under the key.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the entry under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// Counter is implemented by providers that can report how many entries they
// currently hold.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Sizer is implemented by providers that can report the byte footprint of
// their stored values.
type Sizer interface {
	SizeBytes(ctx context.Context) (int64, error)
}

// Flusher is implemented by providers that can drop all of their entries.
type Flusher interface {
	Flush(ctx context.Context) error
}
