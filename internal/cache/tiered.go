package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

// cleanupOpTimeout bounds a single background cleanup pass.
const cleanupOpTimeout = 30 * time.Second

// TieredCache coordinates the in-process memory tier with a durable
// persistent store. Reads try memory first and fall back to the
// persistent store, promoting persistent hits back into memory with a
// fresh memory TTL. Writes go through to both tiers, each stamped with
// that tier's own default TTL, so the durable copy outlives the
// in-process one.
//
// Persistent-store failures never surface on the lookup path: the cache
// degrades to memory-only behavior for the affected operation and logs
// the error.
type TieredCache struct {
	memory     *MemoryTier
	persistent types.PersistentStore
	config     *config.Config
	metrics    types.MetricsRecorder
	logger     *slog.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewTieredCache builds the two-tier cache described by cfg. The
// persistent backend is selected by cfg.Persistent.Backend; a backend
// that cannot be constructed is replaced with a disabled store so the
// cache keeps working memory-only. Metrics may be nil.
func NewTieredCache(cfg *config.Config, metrics types.MetricsRecorder, logger *slog.Logger) *TieredCache {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	tc := &TieredCache{
		memory:     NewMemoryTier(cfg.Memory, logger),
		persistent: newPersistentStore(cfg, logger),
		config:     cfg,
		metrics:    metrics,
		logger:     logger.With("component", "tiered-cache"),
		stopCh:     make(chan struct{}),
	}

	if interval := cfg.Memory.CleanupInterval; interval > 0 {
		tc.wg.Add(1)
		go tc.cleanupWorker(interval)
	}

	return tc
}

func newPersistentStore(cfg *config.Config, logger *slog.Logger) types.PersistentStore {
	switch cfg.Persistent.Backend {
	case "file":
		store, err := NewFileStore(cfg.Persistent, nil, logger)
		if err != nil {
			logger.Warn("Failed to create file store, running memory-only",
				"path", cfg.Persistent.Path, "error", err)
			return NewDisabledStore()
		}
		return store

	case "redis":
		return NewRedisStore(cfg.Redis, nil, logger)

	case "", "none":
		return NewDisabledStore()

	default:
		logger.Warn("Unknown persistent backend, running memory-only",
			"backend", cfg.Persistent.Backend)
		return NewDisabledStore()
	}
}

// Get returns the cached value for key, consulting memory first and the
// persistent store second. A persistent hit is promoted into memory
// re-stamped with the memory tier's default TTL.
func (tc *TieredCache) Get(ctx context.Context, key string) (string, error) {
	if tc.closed.Load() {
		return "", types.ErrClosed
	}

	start := time.Now()

	if entry, err := tc.memory.Get(key); err == nil {
		if tc.metrics != nil {
			tc.metrics.RecordCacheHit("memory", time.Since(start))
		}
		return entry.Value, nil
	}

	entry, err := tc.persistent.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, types.ErrCacheMiss) && !errors.Is(err, types.ErrStoreUnavailable) {
			tc.logger.Warn("Persistent read failed", "key", key, "error", err)
			if tc.metrics != nil {
				tc.metrics.RecordError("cache", "Get", err)
			}
		}
		if tc.metrics != nil {
			tc.metrics.RecordCacheMiss(tc.persistent.Name(), time.Since(start))
		}
		return "", types.ErrCacheMiss
	}

	tc.memory.Set(key, entry.Value, 0)

	if tc.metrics != nil {
		tc.metrics.RecordCacheHit(tc.persistent.Name(), time.Since(start))
	}

	return entry.Value, nil
}

// Set writes value through both tiers. The memory tier applies its own
// default TTL; the persistent tier stamps the entry with the longer
// persistent TTL. Persistent write failures are logged, not returned.
func (tc *TieredCache) Set(ctx context.Context, key, value string) error {
	if tc.closed.Load() {
		return types.ErrClosed
	}

	start := time.Now()

	tc.memory.Set(key, value, 0)
	if tc.metrics != nil {
		tc.metrics.RecordCacheSet("memory", time.Since(start))
	}

	entry := types.NewCacheEntry(value, tc.config.Persistent.DefaultTTL)
	if err := tc.persistent.Set(ctx, key, entry); err != nil {
		if !errors.Is(err, types.ErrStoreUnavailable) {
			tc.logger.Warn("Persistent write failed", "key", key, "error", err)
			if tc.metrics != nil {
				tc.metrics.RecordError("cache", "Set", err)
			}
		}
		return nil
	}

	if tc.metrics != nil && tc.persistent.IsAvailable() {
		tc.metrics.RecordCacheSet(tc.persistent.Name(), time.Since(start))
	}

	return nil
}

// Delete removes one query's entry from both tiers and reports whether
// either tier actually held it.
func (tc *TieredCache) Delete(ctx context.Context, kind types.QueryKind, word string) (bool, error) {
	if tc.closed.Load() {
		return false, types.ErrClosed
	}

	key := Key(kind, word)
	removed := tc.memory.Delete(key)

	persistentRemoved, err := tc.persistent.Delete(ctx, key)
	if err != nil && !errors.Is(err, types.ErrStoreUnavailable) {
		tc.logger.Warn("Persistent delete failed", "key", key, "error", err)
	}

	return removed || persistentRemoved, nil
}

// GetDefinition returns the cached definition for word, if any.
func (tc *TieredCache) GetDefinition(ctx context.Context, word string) (string, bool) {
	value, err := tc.Get(ctx, DefinitionKey(word))
	return value, err == nil
}

// SetDefinition caches a definition for word.
func (tc *TieredCache) SetDefinition(ctx context.Context, word, definition string) error {
	return tc.Set(ctx, DefinitionKey(word), definition)
}

// GetPronunciation returns the cached pronunciation for word, if any.
func (tc *TieredCache) GetPronunciation(ctx context.Context, word string) (string, bool) {
	value, err := tc.Get(ctx, PronunciationKey(word))
	return value, err == nil
}

// SetPronunciation caches a pronunciation for word.
func (tc *TieredCache) SetPronunciation(ctx context.Context, word, pronunciation string) error {
	return tc.Set(ctx, PronunciationKey(word), pronunciation)
}

// GetWordInfo returns the cached definition and pronunciation for word.
// ok is false unless both are cached; a partial record reports absent.
func (tc *TieredCache) GetWordInfo(ctx context.Context, word string) (definition, pronunciation string, ok bool) {
	definition, defOK := tc.GetDefinition(ctx, word)
	if !defOK {
		return "", "", false
	}

	pronunciation, pronOK := tc.GetPronunciation(ctx, word)
	if !pronOK {
		return "", "", false
	}

	return definition, pronunciation, true
}

// SetWordInfo caches both fields of a resolved word in one call. Empty
// fields are skipped rather than cached, so a later lookup still
// consults the providers for them.
func (tc *TieredCache) SetWordInfo(ctx context.Context, word, definition, pronunciation string) error {
	if definition != "" {
		if err := tc.SetDefinition(ctx, word, definition); err != nil {
			return err
		}
	}

	if pronunciation != "" {
		if err := tc.SetPronunciation(ctx, word, pronunciation); err != nil {
			return err
		}
	}

	return nil
}

// ClearAll empties both tiers.
func (tc *TieredCache) ClearAll(ctx context.Context) error {
	if tc.closed.Load() {
		return types.ErrClosed
	}

	tc.memory.Clear()

	if err := tc.persistent.Clear(ctx); err != nil && !errors.Is(err, types.ErrStoreUnavailable) {
		tc.logger.Warn("Persistent clear failed", "error", err)
		return err
	}

	tc.logger.Info("Cleared all cache tiers")
	return nil
}

// CleanupExpired removes expired entries from both tiers and reports how
// many each tier dropped. Persistent-store failures count as zero
// cleaned rather than failing the pass.
func (tc *TieredCache) CleanupExpired(ctx context.Context) (types.CleanupResult, error) {
	if tc.closed.Load() {
		return types.CleanupResult{}, types.ErrClosed
	}

	var result types.CleanupResult
	result.MemoryCleaned = tc.memory.EvictExpired()

	persistentCleaned, err := tc.persistent.EvictExpired(ctx)
	if err != nil && !errors.Is(err, types.ErrStoreUnavailable) {
		tc.logger.Warn("Persistent cleanup failed", "error", err)
	}
	result.PersistentCleaned = persistentCleaned
	result.TotalCleaned = result.MemoryCleaned + result.PersistentCleaned

	if result.TotalCleaned > 0 {
		tc.logger.Debug("Cleanup pass complete",
			"memory", result.MemoryCleaned, "persistent", result.PersistentCleaned)
	}

	return result, nil
}

// Stats snapshots both tiers.
func (tc *TieredCache) Stats() types.CacheStats {
	return types.CacheStats{
		Memory:     tc.memory.Stats(),
		Persistent: tc.persistent.Stats(),
	}
}

// Close stops the background cleanup worker and closes the persistent
// store, flushing any file-backed state. Safe to call more than once.
func (tc *TieredCache) Close() error {
	if tc.closed.Swap(true) {
		return nil
	}

	close(tc.stopCh)
	tc.wg.Wait()

	if err := tc.persistent.Close(); err != nil {
		tc.logger.Warn("Persistent store close failed", "error", err)
		return err
	}

	tc.logger.Debug("Tiered cache closed")
	return nil
}

// cleanupWorker periodically evicts expired entries from both tiers
// until Close is called.
func (tc *TieredCache) cleanupWorker(interval time.Duration) {
	defer tc.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-tc.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), cleanupOpTimeout)
			_, _ = tc.CleanupExpired(ctx)
			cancel()
		}
	}
}
