package cache

import "context"

// CacheStats reports the current state of the cache backend. Entry and size
// figures come paired with humanized renderings for display surfaces.
type CacheStats struct {
	Backend      string `json:"backend"`
	Entries      int64  `json:"entries"`
	HumanEntries string `json:"human_entries"`
	TotalSize    int64  `json:"total_size"`
	HumanSize    string `json:"human_size"`
}

type ICacheUsecase interface {
	Stats(ctx context.Context) (CacheStats, error)
	Clear(ctx context.Context) error
}
