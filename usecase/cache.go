package usecase

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	domainCache "github.com/pokemcp/pokemcp/domains/cache"
	"github.com/pokemcp/pokemcp/pkg/cache"
	pkgError "github.com/pokemcp/pokemcp/pkg/error"
)

type cacheService struct {
	provider cache.Provider
	backend  string
}

func NewCacheService(provider cache.Provider, backend string) domainCache.ICacheUsecase {
	return &cacheService{
		provider: provider,
		backend:  backend,
	}
}

// Stats reports whatever the backend can tell us about itself. Entry and
// size figures are filled only when the provider supports them.
func (s *cacheService) Stats(ctx context.Context) (domainCache.CacheStats, error) {
	stats := domainCache.CacheStats{Backend: s.backend}

	if counter, ok := s.provider.(cache.Counter); ok {
		entries, err := counter.Count(ctx)
		if err != nil {
			return stats, err
		}
		stats.Entries = entries
		stats.HumanEntries = humanize.Comma(entries)
	}

	if sizer, ok := s.provider.(cache.Sizer); ok {
		size, err := sizer.SizeBytes(ctx)
		if err != nil {
			return stats, err
		}
		stats.TotalSize = size
		stats.HumanSize = humanize.Bytes(uint64(size))
	}

	return stats, nil
}

func (s *cacheService) Clear(ctx context.Context) error {
	if s.provider == nil {
		return pkgError.ValidationError("cache is disabled")
	}
	flusher, ok := s.provider.(cache.Flusher)
	if !ok {
		return pkgError.InternalServerError("cache backend does not support clearing")
	}
	if err := flusher.Flush(ctx); err != nil {
		return err
	}

	logrus.Info("[CACHE] Cleared all cached entries")
	return nil
}
