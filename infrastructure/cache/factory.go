package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/pokemcp/pokemcp/infrastructure/valkey"
	"github.com/pokemcp/pokemcp/pkg/cache"
)

// NewProvider selects a cache backend by name. The valkey backend requires
// an already connected client; the memory backend is self-contained and is
// the default when backend is empty.
func NewProvider(backend string, vk *valkey.Client, cleanupInterval time.Duration) (cache.Provider, error) {
	switch backend {
	case "valkey":
		if vk == nil {
			return nil, errors.New("cache: valkey backend selected but no client provided")
		}
		return NewValkeyProvider(vk), nil
	case "memory", "":
		return cache.NewMemoryProvider(cleanupInterval), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", backend)
	}
}
