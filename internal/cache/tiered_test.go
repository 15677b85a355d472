package cache

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

// stubStore is a PersistentStore double that records calls and can be
// forced to fail.
type stubStore struct {
	mu      sync.Mutex
	entries map[string]types.CacheEntry
	gets    int
	sets    int
	evicted int
	err     error
}

func newStubStore() *stubStore {
	return &stubStore{entries: make(map[string]types.CacheEntry)}
}

func (s *stubStore) Name() string      { return "stub" }
func (s *stubStore) IsAvailable() bool { return true }

func (s *stubStore) Get(ctx context.Context, key string) (types.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.err != nil {
		return types.CacheEntry{}, s.err
	}
	entry, ok := s.entries[key]
	if !ok {
		return types.CacheEntry{}, types.ErrCacheMiss
	}
	return entry, nil
}

func (s *stubStore) Set(ctx context.Context, key string, entry types.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.err != nil {
		return s.err
	}
	s.entries[key] = entry
	return nil
}

func (s *stubStore) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok, nil
}

func (s *stubStore) EvictExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return s.evicted, nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = make(map[string]types.CacheEntry)
	return nil
}

func (s *stubStore) Stats() types.PersistentTierStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.PersistentTierStats{
		Total:     len(s.entries),
		Active:    len(s.entries),
		Backend:   "stub",
		Available: true,
	}
}

func (s *stubStore) Close() error { return nil }

func (s *stubStore) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

var _ types.PersistentStore = (*stubStore)(nil)

func newStubbedCache(t *testing.T, store types.PersistentStore) *TieredCache {
	t.Helper()
	tc := NewTieredCache(config.ForTesting(), nil, nil)
	tc.persistent = store
	return tc
}

func TestNewTieredCache(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		cfg := config.ForTestingWithFile(filepath.Join(t.TempDir(), "cache.json"))
		tc := NewTieredCache(cfg, nil, nil)
		defer tc.Close()

		if got := tc.Stats().Persistent.Backend; got != "file" {
			t.Errorf("Persistent.Backend = %q, want %q", got, "file")
		}
	})

	t.Run("none backend uses disabled store", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if got := tc.Stats().Persistent.Backend; got != "disabled" {
			t.Errorf("Persistent.Backend = %q, want %q", got, "disabled")
		}
	})

	t.Run("unknown backend degrades to disabled", func(t *testing.T) {
		cfg := config.ForTesting()
		cfg.Persistent.Backend = "postgres"
		tc := NewTieredCache(cfg, nil, nil)
		defer tc.Close()

		if got := tc.Stats().Persistent.Backend; got != "disabled" {
			t.Errorf("Persistent.Backend = %q, want %q", got, "disabled")
		}
	})

	t.Run("unusable file path degrades to disabled", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		tc0 := NewTieredCache(config.ForTestingWithFile(blocker), nil, nil)
		tc0.Close() // leaves a regular file at blocker

		cfg := config.ForTestingWithFile(filepath.Join(blocker, "sub", "cache.json"))
		tc := NewTieredCache(cfg, nil, nil)
		defer tc.Close()

		if got := tc.Stats().Persistent.Backend; got != "disabled" {
			t.Errorf("Persistent.Backend = %q, want %q", got, "disabled")
		}
	})
}

func TestTieredCacheGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if _, err := tc.Get(ctx, "absent"); !errors.Is(err, types.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.Set(ctx, "k1", "a mutual agreement"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := tc.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "a mutual agreement" {
			t.Errorf("Get() = %q, want %q", got, "a mutual agreement")
		}
	})

	t.Run("closed cache rejects operations", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		tc.Close()

		if _, err := tc.Get(ctx, "k1"); !errors.Is(err, types.ErrClosed) {
			t.Errorf("Get() after Close error = %v, want ErrClosed", err)
		}
		if err := tc.Set(ctx, "k1", "v"); !errors.Is(err, types.ErrClosed) {
			t.Errorf("Set() after Close error = %v, want ErrClosed", err)
		}
		if err := tc.ClearAll(ctx); !errors.Is(err, types.ErrClosed) {
			t.Errorf("ClearAll() after Close error = %v, want ErrClosed", err)
		}
		if _, err := tc.CleanupExpired(ctx); !errors.Is(err, types.ErrClosed) {
			t.Errorf("CleanupExpired() after Close error = %v, want ErrClosed", err)
		}
	})
}

func TestTieredCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	tc := newStubbedCache(t, store)
	defer tc.Close()

	if err := tc.Set(ctx, "k1", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	t.Run("memory entry carries the memory TTL", func(t *testing.T) {
		entry, err := tc.memory.Get("k1")
		if err != nil {
			t.Fatalf("memory.Get() error = %v", err)
		}
		if entry.TTL != tc.config.Memory.DefaultTTL {
			t.Errorf("memory entry TTL = %v, want %v", entry.TTL, tc.config.Memory.DefaultTTL)
		}
	})

	t.Run("persistent entry carries the persistent TTL", func(t *testing.T) {
		entry, err := store.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("store.Get() error = %v", err)
		}
		if entry.TTL != tc.config.Persistent.DefaultTTL {
			t.Errorf("persistent entry TTL = %v, want %v", entry.TTL, tc.config.Persistent.DefaultTTL)
		}
		if entry.Value != "value" {
			t.Errorf("persistent entry value = %q, want %q", entry.Value, "value")
		}
	})
}

func TestTieredCachePromotion(t *testing.T) {
	ctx := context.Background()

	t.Run("persistent hit is promoted with a fresh memory TTL", func(t *testing.T) {
		store := newStubStore()
		store.entries["k1"] = types.NewCacheEntry("durable value", 7*24*time.Hour)

		tc := newStubbedCache(t, store)
		defer tc.Close()

		got, err := tc.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "durable value" {
			t.Errorf("Get() = %q, want %q", got, "durable value")
		}

		entry, err := tc.memory.Get("k1")
		if err != nil {
			t.Fatalf("promoted entry missing from memory: %v", err)
		}
		if entry.TTL != tc.config.Memory.DefaultTTL {
			t.Errorf("promoted entry TTL = %v, want memory default %v", entry.TTL, tc.config.Memory.DefaultTTL)
		}
	})

	t.Run("memory hit does not consult the persistent store", func(t *testing.T) {
		store := newStubStore()
		tc := newStubbedCache(t, store)
		defer tc.Close()

		if err := tc.Set(ctx, "k1", "value"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		before := store.getCount()
		for i := 0; i < 5; i++ {
			if _, err := tc.Get(ctx, "k1"); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
		}
		if got := store.getCount(); got != before {
			t.Errorf("persistent store consulted %d times on memory hits, want 0", got-before)
		}
	})

	t.Run("expired memory entry falls back to persistent", func(t *testing.T) {
		store := newStubStore()
		store.entries["k1"] = types.NewCacheEntry("durable value", 0)

		tc := newStubbedCache(t, store)
		defer tc.Close()

		tc.memory.Set("k1", "stale value", 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		got, err := tc.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "durable value" {
			t.Errorf("Get() = %q, want %q", got, "durable value")
		}
	})
}

func TestTieredCacheWordOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("definition round trip", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetDefinition(ctx, "contract", "a mutual agreement"); err != nil {
			t.Fatalf("SetDefinition() error = %v", err)
		}

		got, ok := tc.GetDefinition(ctx, "contract")
		if !ok {
			t.Fatal("GetDefinition() ok = false, want true")
		}
		if got != "a mutual agreement" {
			t.Errorf("GetDefinition() = %q, want %q", got, "a mutual agreement")
		}
	})

	t.Run("word is normalized before keying", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetDefinition(ctx, "  Contract ", "a mutual agreement"); err != nil {
			t.Fatalf("SetDefinition() error = %v", err)
		}

		if _, ok := tc.GetDefinition(ctx, "contract"); !ok {
			t.Error("GetDefinition(normalized form) ok = false, want true")
		}
	})

	t.Run("definition and pronunciation are independent entries", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetPronunciation(ctx, "hello", "/həˈloʊ/"); err != nil {
			t.Fatalf("SetPronunciation() error = %v", err)
		}

		if _, ok := tc.GetDefinition(ctx, "hello"); ok {
			t.Error("GetDefinition() ok = true after caching only a pronunciation")
		}
		got, ok := tc.GetPronunciation(ctx, "hello")
		if !ok {
			t.Fatal("GetPronunciation() ok = false, want true")
		}
		if got != "/həˈloʊ/" {
			t.Errorf("GetPronunciation() = %q, want %q", got, "/həˈloʊ/")
		}
	})

	t.Run("delete removes a single kind from both tiers", func(t *testing.T) {
		store := newStubStore()
		tc := newStubbedCache(t, store)
		defer tc.Close()

		if err := tc.SetDefinition(ctx, "hello", "你好"); err != nil {
			t.Fatalf("SetDefinition() error = %v", err)
		}
		if err := tc.SetPronunciation(ctx, "hello", "/həˈloʊ/"); err != nil {
			t.Fatalf("SetPronunciation() error = %v", err)
		}

		removed, err := tc.Delete(ctx, types.KindDefinition, "hello")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !removed {
			t.Error("Delete() = false, want true")
		}

		if _, ok := tc.GetDefinition(ctx, "hello"); ok {
			t.Error("GetDefinition() ok = true after delete")
		}
		if _, ok := tc.GetPronunciation(ctx, "hello"); !ok {
			t.Error("GetPronunciation() ok = false, pronunciation should survive definition delete")
		}

		removed, err = tc.Delete(ctx, types.KindDefinition, "hello")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if removed {
			t.Error("second Delete() = true, want false")
		}
	})
}

func TestTieredCacheGetWordInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("complete record", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetWordInfo(ctx, "hello", "你好", "/həˈloʊ/"); err != nil {
			t.Fatalf("SetWordInfo() error = %v", err)
		}

		definition, pronunciation, ok := tc.GetWordInfo(ctx, "hello")
		if !ok {
			t.Fatal("GetWordInfo() ok = false, want true")
		}
		if definition != "你好" {
			t.Errorf("definition = %q, want %q", definition, "你好")
		}
		if pronunciation != "/həˈloʊ/" {
			t.Errorf("pronunciation = %q, want %q", pronunciation, "/həˈloʊ/")
		}
	})

	t.Run("partial record reports absent", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetDefinition(ctx, "hello", "你好"); err != nil {
			t.Fatalf("SetDefinition() error = %v", err)
		}

		definition, pronunciation, ok := tc.GetWordInfo(ctx, "hello")
		if ok {
			t.Error("GetWordInfo() ok = true with only a definition cached")
		}
		if definition != "" || pronunciation != "" {
			t.Errorf("GetWordInfo() = (%q, %q), want empty fields on partial record", definition, pronunciation)
		}
	})

	t.Run("uncached word reports absent", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if _, _, ok := tc.GetWordInfo(ctx, "absent"); ok {
			t.Error("GetWordInfo() ok = true for uncached word")
		}
	})

	t.Run("set word info skips empty fields", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.SetWordInfo(ctx, "hello", "你好", ""); err != nil {
			t.Fatalf("SetWordInfo() error = %v", err)
		}

		if _, ok := tc.GetDefinition(ctx, "hello"); !ok {
			t.Error("GetDefinition() ok = false, want true")
		}
		if _, ok := tc.GetPronunciation(ctx, "hello"); ok {
			t.Error("GetPronunciation() ok = true, empty pronunciation should not be cached")
		}
	})
}

func TestTieredCacheClearAll(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	tc := newStubbedCache(t, store)
	defer tc.Close()

	if err := tc.SetWordInfo(ctx, "hello", "你好", "/həˈloʊ/"); err != nil {
		t.Fatalf("SetWordInfo() error = %v", err)
	}
	if err := tc.SetDefinition(ctx, "world", "世界"); err != nil {
		t.Fatalf("SetDefinition() error = %v", err)
	}

	if err := tc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	stats := tc.Stats()
	if stats.Memory.Total != 0 {
		t.Errorf("Memory.Total = %d, want 0", stats.Memory.Total)
	}
	if stats.Persistent.Total != 0 {
		t.Errorf("Persistent.Total = %d, want 0", stats.Persistent.Total)
	}
	if _, ok := tc.GetDefinition(ctx, "hello"); ok {
		t.Error("GetDefinition() ok = true after ClearAll")
	}
}

func TestTieredCacheCleanupExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("counts both tiers", func(t *testing.T) {
		store := newStubStore()
		store.evicted = 3

		tc := newStubbedCache(t, store)
		defer tc.Close()

		tc.memory.Set("short1", "v", 10*time.Millisecond)
		tc.memory.Set("short2", "v", 10*time.Millisecond)
		tc.memory.Set("long", "v", 1*time.Hour)
		time.Sleep(30 * time.Millisecond)

		result, err := tc.CleanupExpired(ctx)
		if err != nil {
			t.Fatalf("CleanupExpired() error = %v", err)
		}
		if result.MemoryCleaned != 2 {
			t.Errorf("MemoryCleaned = %d, want 2", result.MemoryCleaned)
		}
		if result.PersistentCleaned != 3 {
			t.Errorf("PersistentCleaned = %d, want 3", result.PersistentCleaned)
		}
		if result.TotalCleaned != 5 {
			t.Errorf("TotalCleaned = %d, want 5", result.TotalCleaned)
		}
	})

	t.Run("expired file entries are dropped from both tiers", func(t *testing.T) {
		cfg := config.ForTestingWithFile(filepath.Join(t.TempDir(), "cache.json"))
		cfg.Memory.DefaultTTL = 10 * time.Millisecond
		cfg.Persistent.DefaultTTL = 10 * time.Millisecond

		tc := NewTieredCache(cfg, nil, nil)
		defer tc.Close()

		if err := tc.SetWordInfo(ctx, "hello", "你好", "/həˈloʊ/"); err != nil {
			t.Fatalf("SetWordInfo() error = %v", err)
		}
		time.Sleep(30 * time.Millisecond)

		result, err := tc.CleanupExpired(ctx)
		if err != nil {
			t.Fatalf("CleanupExpired() error = %v", err)
		}
		if result.MemoryCleaned != 2 {
			t.Errorf("MemoryCleaned = %d, want 2", result.MemoryCleaned)
		}
		if result.PersistentCleaned != 2 {
			t.Errorf("PersistentCleaned = %d, want 2", result.PersistentCleaned)
		}
		if result.TotalCleaned != 4 {
			t.Errorf("TotalCleaned = %d, want 4", result.TotalCleaned)
		}
	})

	t.Run("nothing expired", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		defer tc.Close()

		if err := tc.Set(ctx, "k1", "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		result, err := tc.CleanupExpired(ctx)
		if err != nil {
			t.Fatalf("CleanupExpired() error = %v", err)
		}
		if result.TotalCleaned != 0 {
			t.Errorf("TotalCleaned = %d, want 0", result.TotalCleaned)
		}
	})
}

func TestTieredCachePersistentFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("failing store never breaks the lookup path", func(t *testing.T) {
		store := newStubStore()
		store.err = errors.New("disk full")

		tc := newStubbedCache(t, store)
		defer tc.Close()

		if err := tc.Set(ctx, "k1", "value"); err != nil {
			t.Fatalf("Set() with failing store error = %v, want nil", err)
		}

		got, err := tc.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "value" {
			t.Errorf("Get() = %q, want %q", got, "value")
		}
	})

	t.Run("miss stays a miss when the store fails", func(t *testing.T) {
		store := newStubStore()
		store.err = errors.New("disk full")

		tc := newStubbedCache(t, store)
		defer tc.Close()

		if _, err := tc.Get(ctx, "absent"); !errors.Is(err, types.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("clear all surfaces store errors", func(t *testing.T) {
		store := newStubStore()
		store.err = errors.New("disk full")

		tc := newStubbedCache(t, store)
		defer tc.Close()

		if err := tc.ClearAll(ctx); err == nil {
			t.Error("ClearAll() error = nil, want store failure")
		}
	})
}

func TestTieredCachePersistenceAcrossRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")

	tc1 := NewTieredCache(config.ForTestingWithFile(path), nil, nil)
	if err := tc1.SetWordInfo(ctx, "hello", "你好", "/həˈloʊ/"); err != nil {
		t.Fatalf("SetWordInfo() error = %v", err)
	}
	if err := tc1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	tc2 := NewTieredCache(config.ForTestingWithFile(path), nil, nil)
	defer tc2.Close()

	definition, pronunciation, ok := tc2.GetWordInfo(ctx, "hello")
	if !ok {
		t.Fatal("GetWordInfo() ok = false after restart, want true")
	}
	if definition != "你好" || pronunciation != "/həˈloʊ/" {
		t.Errorf("GetWordInfo() = (%q, %q), want (%q, %q)", definition, pronunciation, "你好", "/həˈloʊ/")
	}
}

func TestTieredCacheBackgroundCleanup(t *testing.T) {
	cfg := config.ForTesting()
	cfg.Memory.DefaultTTL = 10 * time.Millisecond
	cfg.Memory.CleanupInterval = 20 * time.Millisecond

	tc := NewTieredCache(cfg, nil, nil)
	defer tc.Close()

	if err := tc.Set(context.Background(), "k1", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for tc.memory.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if got := tc.memory.Len(); got != 0 {
		t.Errorf("memory Len() = %d after background cleanup, want 0", got)
	}
}

func TestTieredCacheClose(t *testing.T) {
	t.Run("double close is safe", func(t *testing.T) {
		tc := NewTieredCache(config.ForTesting(), nil, nil)
		if err := tc.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := tc.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
	})

	t.Run("close flushes the file store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		tc := NewTieredCache(config.ForTestingWithFile(path), nil, nil)

		if err := tc.Set(context.Background(), "k1", "value"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := tc.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		store, err := NewFileStore(config.ForTestingWithFile(path).Persistent, nil, nil)
		if err != nil {
			t.Fatalf("NewFileStore() error = %v", err)
		}
		defer store.Close()

		if _, err := store.Get(context.Background(), "k1"); err != nil {
			t.Errorf("Get() after reopen error = %v, want entry on disk", err)
		}
	})
}

func TestTieredCacheStats(t *testing.T) {
	ctx := context.Background()
	tc := NewTieredCache(config.ForTesting(), nil, nil)
	defer tc.Close()

	for _, word := range []string{"hello", "world", "computer"} {
		if err := tc.SetDefinition(ctx, word, "definition of "+word); err != nil {
			t.Fatalf("SetDefinition(%q) error = %v", word, err)
		}
	}
	tc.GetDefinition(ctx, "hello")
	tc.GetDefinition(ctx, "absent")

	stats := tc.Stats()
	if stats.Memory.Total != 3 {
		t.Errorf("Memory.Total = %d, want 3", stats.Memory.Total)
	}
	if stats.Memory.Hits != 1 {
		t.Errorf("Memory.Hits = %d, want 1", stats.Memory.Hits)
	}
	if stats.Memory.Misses != 1 {
		t.Errorf("Memory.Misses = %d, want 1", stats.Memory.Misses)
	}
	if stats.Persistent.Backend != "disabled" {
		t.Errorf("Persistent.Backend = %q, want %q", stats.Persistent.Backend, "disabled")
	}
}
