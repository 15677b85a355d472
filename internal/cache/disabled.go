package cache

import (
	"context"

	"github.com/LavishGent/wordbook/internal/types"
)

// DisabledStore is a no-op persistent store used when persistence is
// turned off or the configured backend cannot be constructed. Reads
// always miss and writes are silently discarded, leaving the tiered
// cache memory-only.
type DisabledStore struct{}

// NewDisabledStore creates a new disabled persistent store.
func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

// Name returns the cache layer name.
func (s *DisabledStore) Name() string { return "disabled" }

// IsAvailable returns false as this store is disabled.
func (s *DisabledStore) IsAvailable() bool { return false }

// Get returns ErrCacheMiss as this store is disabled.
func (s *DisabledStore) Get(ctx context.Context, key string) (types.CacheEntry, error) {
	return types.CacheEntry{}, types.ErrCacheMiss
}

// Set does nothing as this store is disabled.
func (s *DisabledStore) Set(ctx context.Context, key string, entry types.CacheEntry) error {
	return nil
}

// Delete does nothing as this store is disabled.
func (s *DisabledStore) Delete(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// EvictExpired does nothing as this store is disabled.
func (s *DisabledStore) EvictExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// Clear does nothing as this store is disabled.
func (s *DisabledStore) Clear(ctx context.Context) error { return nil }

// Stats returns empty statistics as this store is disabled.
func (s *DisabledStore) Stats() types.PersistentTierStats {
	return types.PersistentTierStats{Backend: "disabled"}
}

// Close does nothing as this store is disabled.
func (s *DisabledStore) Close() error { return nil }

var _ types.PersistentStore = (*DisabledStore)(nil)
