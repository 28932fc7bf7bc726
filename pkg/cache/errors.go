package cache

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Fetch when it is invoked without a
// provider. This is a wiring mistake, so it fails fast instead of silently
// running uncached.
var ErrNotConfigured = errors.New("cache: no provider configured")

// UnavailableError wraps a transport failure talking to the cache backend.
// Callers treat it as a miss; the cache is an optimization, never a hard
// dependency.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// DecodeError reports a cached payload that no longer matches the shape the
// caller expects, typically after a model change. Fetch discards the entry
// and refetches from the source.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cache decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is a cache transport failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
