package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Fetch is the read-through path every cached repository operation goes
// through. On a hit the stored entry is decoded into T and fn is never
// invoked. On a miss fn runs once, its result is serialized and stored under
// key with the given ttl, and the original (not the round-tripped) value is
// returned.
//
// Cache failures never fail the request: an unreachable provider and an
// entry that no longer decodes into T are both logged and treated as a miss.
// Errors from fn pass through untouched and are never stored, so a failed
// lookup is retried on the next call rather than cached negatively.
//
// Two concurrent misses on the same key may both invoke fn and both write
// the entry, last write wins. That is acceptable for the idempotent,
// immutable upstream reads this layer serves; callers needing at-most-one
// fetch per key must add their own in-flight de-duplication.
func Fetch[T any](ctx context.Context, p Provider, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if p == nil {
		return zero, ErrNotConfigured
	}

	raw, found, err := p.Get(ctx, key)
	switch {
	case err != nil:
		logrus.Warnf("[CACHE] get failed for %s, treating as miss: %v", key, err)
	case found:
		value, decodeErr := Deserialize[T](raw)
		if decodeErr == nil {
			return value, nil
		}
		logrus.Warnf("[CACHE] entry %s no longer matches expected shape, refetching: %v", key, decodeErr)
	}

	value, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	encoded, err := Serialize(value)
	if err != nil {
		logrus.Warnf("[CACHE] failed to serialize result for %s: %v", key, err)
		return value, nil
	}
	if err := p.Set(ctx, key, encoded, ttl); err != nil {
		logrus.Warnf("[CACHE] set failed for %s: %v", key, err)
	}
	return value, nil
}
