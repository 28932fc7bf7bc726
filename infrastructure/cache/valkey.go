package cache

import (
	"context"
	"time"

	valkeylib "github.com/valkey-io/valkey-go"

	"github.com/pokemcp/pokemcp/infrastructure/valkey"
	"github.com/pokemcp/pokemcp/pkg/cache"
)

const scanBatchSize = 100

// ValkeyProvider implements cache.Provider on top of a shared Valkey
// connection. Keys are stored under the client's key prefix so several
// services can share one Valkey instance without collisions.
//
// The provider does not own the connection: Close is a no-op and the caller
// remains responsible for closing the client it passed in.
type ValkeyProvider struct {
	vk *valkey.Client
}

func NewValkeyProvider(vk *valkey.Client) *ValkeyProvider {
	return &ValkeyProvider{vk: vk}
}

func (p *ValkeyProvider) Connect(ctx context.Context) error {
	if err := p.vk.Ping(ctx); err != nil {
		return &cache.UnavailableError{Op: "connect", Err: err}
	}
	return nil
}

func (p *ValkeyProvider) Close() error {
	return nil
}

func (p *ValkeyProvider) Get(ctx context.Context, key string) (string, bool, error) {
	inner := p.vk.Inner()
	raw, err := inner.Do(ctx, inner.B().Get().Key(p.vk.Key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsNil(err) {
			return "", false, nil
		}
		return "", false, &cache.UnavailableError{Op: "get", Err: err}
	}
	return string(raw), true, nil
}

func (p *ValkeyProvider) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	inner := p.vk.Inner()
	var resp valkeylib.ValkeyResult
	if ttl > 0 {
		resp = inner.Do(ctx, inner.B().Set().Key(p.vk.Key(key)).Value(value).Ex(ttl).Build())
	} else {
		resp = inner.Do(ctx, inner.B().Set().Key(p.vk.Key(key)).Value(value).Build())
	}
	if err := resp.Error(); err != nil {
		return &cache.UnavailableError{Op: "set", Err: err}
	}
	return nil
}

func (p *ValkeyProvider) Delete(ctx context.Context, key string) error {
	inner := p.vk.Inner()
	if err := inner.Do(ctx, inner.B().Del().Key(p.vk.Key(key)).Build()).Error(); err != nil {
		return &cache.UnavailableError{Op: "delete", Err: err}
	}
	return nil
}

// Count returns the number of cached entries under this service's
// namespace.
func (p *ValkeyProvider) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.scanKeys(ctx, func(keys []string) error {
		total += int64(len(keys))
		return nil
	})
	return total, err
}

// SizeBytes returns the combined size of all cached values under this
// service's namespace.
func (p *ValkeyProvider) SizeBytes(ctx context.Context) (int64, error) {
	inner := p.vk.Inner()
	var total int64
	err := p.scanKeys(ctx, func(keys []string) error {
		values, err := inner.Do(ctx, inner.B().Mget().Key(keys...).Build()).AsStrSlice()
		if err != nil {
			return &cache.UnavailableError{Op: "mget", Err: err}
		}
		for _, v := range values {
			total += int64(len(v))
		}
		return nil
	})
	return total, err
}

// Flush removes every cached entry under this service's namespace. Other
// keyspaces on the same Valkey instance are left untouched.
func (p *ValkeyProvider) Flush(ctx context.Context) error {
	inner := p.vk.Inner()
	return p.scanKeys(ctx, func(keys []string) error {
		if err := inner.Do(ctx, inner.B().Del().Key(keys...).Build()).Error(); err != nil {
			return &cache.UnavailableError{Op: "flush", Err: err}
		}
		return nil
	})
}

func (p *ValkeyProvider) scanKeys(ctx context.Context, fn func(keys []string) error) error {
	inner := p.vk.Inner()
	pattern := p.vk.KeyPrefix() + cache.KeyNamespace() + ":*"

	var cursor uint64
	for {
		entry, err := inner.Do(ctx, inner.B().Scan().Cursor(cursor).Match(pattern).Count(scanBatchSize).Build()).AsScanEntry()
		if err != nil {
			return &cache.UnavailableError{Op: "scan", Err: err}
		}
		if len(entry.Elements) > 0 {
			if err := fn(entry.Elements); err != nil {
				return err
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}
