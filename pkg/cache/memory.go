package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often the in-memory provider sweeps expired
// entries when no interval is configured.
const DefaultCleanupInterval = 1 * time.Minute

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means the entry never expires
}

// MemoryProvider is a process-local Provider used when no Valkey backend is
// configured, and as the backend in tests. Expired entries are invisible to
// Get immediately and reclaimed by a background janitor.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryProvider creates a memory-backed cache and starts its janitor.
// Callers own the provider and must Close it to stop the janitor.
func NewMemoryProvider(cleanupInterval time.Duration) *MemoryProvider {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	p := &MemoryProvider{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go p.janitor(cleanupInterval)
	return p
}

func (p *MemoryProvider) Connect(ctx context.Context) error {
	return nil
}

func (p *MemoryProvider) Close() error {
	p.closeOnce.Do(func() {
		close(p.stop)
	})
	return nil
}

func (p *MemoryProvider) Get(ctx context.Context, key string) (string, bool, error) {
	p.mu.RLock()
	entry, ok := p.entries[key]
	p.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (p *MemoryProvider) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	p.mu.Lock()
	p.entries[key] = entry
	p.mu.Unlock()
	return nil
}

func (p *MemoryProvider) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
	return nil
}

// Count returns the number of live entries.
func (p *MemoryProvider) Count(ctx context.Context) (int64, error) {
	now := time.Now()

	p.mu.RLock()
	defer p.mu.RUnlock()

	var n int64
	for _, entry := range p.entries {
		if entry.expiresAt.IsZero() || now.Before(entry.expiresAt) {
			n++
		}
	}
	return n, nil
}

// SizeBytes returns the byte footprint of all live values.
func (p *MemoryProvider) SizeBytes(ctx context.Context) (int64, error) {
	now := time.Now()

	p.mu.RLock()
	defer p.mu.RUnlock()

	var size int64
	for _, entry := range p.entries {
		if entry.expiresAt.IsZero() || now.Before(entry.expiresAt) {
			size += int64(len(entry.value))
		}
	}
	return size, nil
}

// Flush drops every entry.
func (p *MemoryProvider) Flush(ctx context.Context) error {
	p.mu.Lock()
	p.entries = make(map[string]memoryEntry)
	p.mu.Unlock()
	return nil
}

func (p *MemoryProvider) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.sweep()
		}
	}
}

func (p *MemoryProvider) sweep() {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	for key, entry := range p.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(p.entries, key)
		}
	}
}
