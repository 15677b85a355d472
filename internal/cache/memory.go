package cache

import (
	"container/list"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

// MemoryTier implements the in-memory cache layer. It is bounded by entry
// count and evicts the single least recently used entry when a new key
// arrives at capacity. Expired entries are dropped lazily on access.
//
// A single mutex guards the map and the recency list; reads update
// recency, so there is no benefit to a read-write lock here.
type MemoryTier struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	config config.MemoryConfig
	logger *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	deletes   atomic.Int64
	evictions atomic.Int64
}

type memoryEntry struct {
	key   string
	entry types.CacheEntry
}

// NewMemoryTier creates a new memory tier with the given configuration.
func NewMemoryTier(cfg config.MemoryConfig, logger *slog.Logger) *MemoryTier {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryTier{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		config:  cfg,
		logger:  logger.With("component", "memory-cache"),
	}
}

// Name returns the cache layer name.
func (t *MemoryTier) Name() string {
	return "memory"
}

// Get retrieves an entry from the memory tier. A hit refreshes the
// entry's recency. Expired entries are removed and reported as misses.
func (t *MemoryTier) Get(key string) (types.CacheEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elem, ok := t.entries[key]
	if !ok {
		t.misses.Add(1)
		return types.CacheEntry{}, types.ErrCacheMiss
	}

	ent := elem.Value.(*memoryEntry)
	if ent.entry.IsExpired() {
		t.removeElement(elem)
		t.evictions.Add(1)
		t.misses.Add(1)
		return types.CacheEntry{}, types.ErrCacheMiss
	}

	t.order.MoveToFront(elem)
	t.hits.Add(1)
	return ent.entry, nil
}

// Set stores a value in the memory tier. A non-positive ttl falls back to
// the configured default. Overwriting an existing key never evicts; a new
// key at capacity evicts exactly one entry, the least recently used.
func (t *MemoryTier) Set(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = t.config.DefaultTTL
	}
	entry := types.NewCacheEntry(value, ttl)

	t.mu.Lock()
	defer t.mu.Unlock()

	if elem, ok := t.entries[key]; ok {
		elem.Value.(*memoryEntry).entry = entry
		t.order.MoveToFront(elem)
		t.sets.Add(1)
		return
	}

	if t.config.MaxSize > 0 && len(t.entries) >= t.config.MaxSize {
		t.evictOldest()
	}

	t.entries[key] = t.order.PushFront(&memoryEntry{key: key, entry: entry})
	t.sets.Add(1)
}

// Delete removes an entry from the memory tier. It reports whether the
// key was present.
func (t *MemoryTier) Delete(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	elem, ok := t.entries[key]
	if !ok {
		return false
	}

	t.removeElement(elem)
	t.deletes.Add(1)
	return true
}

// Clear removes all entries from the memory tier.
func (t *MemoryTier) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[string]*list.Element)
	t.order.Init()
}

// EvictExpired removes every expired entry and returns the number
// removed.
func (t *MemoryTier) EvictExpired() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []*list.Element
	for elem := t.order.Front(); elem != nil; elem = elem.Next() {
		if elem.Value.(*memoryEntry).entry.IsExpired() {
			expired = append(expired, elem)
		}
	}

	for _, elem := range expired {
		t.removeElement(elem)
	}

	if len(expired) > 0 {
		t.evictions.Add(int64(len(expired)))
		t.logger.Debug("Evicted expired entries", "count", len(expired))
	}

	return len(expired)
}

// Len returns the current number of entries, expired or not.
func (t *MemoryTier) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Stats returns a snapshot of the memory tier. Expired entries that have
// not been touched since expiring still count toward Total.
func (t *MemoryTier) Stats() types.MemoryTierStats {
	t.mu.Lock()
	total := len(t.entries)
	expired := 0
	for elem := t.order.Front(); elem != nil; elem = elem.Next() {
		if elem.Value.(*memoryEntry).entry.IsExpired() {
			expired++
		}
	}
	t.mu.Unlock()

	usage := 0.0
	if t.config.MaxSize > 0 {
		usage = float64(total) / float64(t.config.MaxSize)
	}

	return types.MemoryTierStats{
		Total:      total,
		Expired:    expired,
		Active:     total - expired,
		MaxSize:    t.config.MaxSize,
		UsageRatio: usage,
		Hits:       t.hits.Load(),
		Misses:     t.misses.Load(),
		Sets:       t.sets.Load(),
		Deletes:    t.deletes.Load(),
		Evictions:  t.evictions.Load(),
	}
}

// HitRatio returns the cache hit ratio.
func (t *MemoryTier) HitRatio() float64 {
	hits := t.hits.Load()
	misses := t.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// evictOldest removes the least recently used entry. Callers hold the
// lock.
func (t *MemoryTier) evictOldest() {
	elem := t.order.Back()
	if elem == nil {
		return
	}

	ent := elem.Value.(*memoryEntry)
	t.removeElement(elem)
	t.evictions.Add(1)
	t.logger.Debug("Evicted LRU entry", "key", ent.key)
}

// removeElement drops an entry from both the map and the recency list.
// Callers hold the lock.
func (t *MemoryTier) removeElement(elem *list.Element) {
	ent := elem.Value.(*memoryEntry)
	t.order.Remove(elem)
	delete(t.entries, ent.key)
}
