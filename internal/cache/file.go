package cache

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

// FileStore implements a disk-backed persistent cache layer. The snapshot
// is loaded once at construction and flushed back on every mutation; a
// corrupt or missing file is logged and replaced with an empty cache, so
// construction only fails when the cache directory cannot be created.
type FileStore struct {
	mu      sync.Mutex
	entries map[string]types.CacheEntry

	path       string
	config     config.PersistentConfig
	serializer types.Serializer
	logger     *slog.Logger

	closed atomic.Bool
}

// NewFileStore creates a file store backed by the configured snapshot
// path.
func NewFileStore(cfg config.PersistentConfig, serializer types.Serializer, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if serializer == nil {
		serializer = NewJSONSerializer()
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}

	s := &FileStore{
		entries:    make(map[string]types.CacheEntry),
		path:       cfg.Path,
		config:     cfg,
		serializer: serializer,
		logger:     logger.With("component", "file-cache"),
	}
	s.load()
	return s, nil
}

// Name returns the cache layer name.
func (s *FileStore) Name() string {
	return "file"
}

// IsAvailable returns true if the store is not closed.
func (s *FileStore) IsAvailable() bool {
	return !s.closed.Load()
}

// Get retrieves an entry from the file store. Expired entries are dropped
// from the in-memory snapshot and reported as misses; the snapshot is
// flushed on the next mutation rather than on every expired read.
func (s *FileStore) Get(ctx context.Context, key string) (types.CacheEntry, error) {
	if s.closed.Load() {
		return types.CacheEntry{}, types.ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return types.CacheEntry{}, types.ErrCacheMiss
	}

	if entry.IsExpired() {
		delete(s.entries, key)
		return types.CacheEntry{}, types.ErrCacheMiss
	}

	return entry, nil
}

// Set stores an entry and flushes the snapshot to disk.
func (s *FileStore) Set(ctx context.Context, key string, entry types.CacheEntry) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	if err := s.flush(); err != nil {
		return types.NewCacheError("Set", key, "file", err)
	}
	return nil
}

// Delete removes an entry and flushes the snapshot. It reports whether
// the key was present.
func (s *FileStore) Delete(ctx context.Context, key string) (bool, error) {
	if s.closed.Load() {
		return false, types.ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false, nil
	}

	delete(s.entries, key)
	if err := s.flush(); err != nil {
		return true, types.NewCacheError("Delete", key, "file", err)
	}
	return true, nil
}

// EvictExpired removes every expired entry and returns the number
// removed. The snapshot is flushed only when something was removed.
func (s *FileStore) EvictExpired(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, types.ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for key, entry := range s.entries {
		if entry.IsExpired() {
			expired = append(expired, key)
		}
	}

	for _, key := range expired {
		delete(s.entries, key)
	}

	if len(expired) > 0 {
		if err := s.flush(); err != nil {
			return len(expired), types.NewCacheError("EvictExpired", "", "file", err)
		}
		s.logger.Debug("Evicted expired entries", "count", len(expired))
	}

	return len(expired), nil
}

// Clear removes all entries and flushes the empty snapshot.
func (s *FileStore) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]types.CacheEntry)
	if err := s.flush(); err != nil {
		return types.NewCacheError("Clear", "", "file", err)
	}
	return nil
}

// Len returns the current number of entries, expired or not.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns a snapshot of the file store.
func (s *FileStore) Stats() types.PersistentTierStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.entries)
	expired := 0
	for _, entry := range s.entries {
		if entry.IsExpired() {
			expired++
		}
	}

	return types.PersistentTierStats{
		Total:     total,
		Expired:   expired,
		Active:    total - expired,
		Backend:   "file",
		Available: !s.closed.Load(),
	}
}

// Close flushes the snapshot one final time and marks the store closed.
func (s *FileStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flush(); err != nil {
		return types.NewCacheError("Close", "", "file", err)
	}
	return nil
}

// load reads the snapshot from disk. A missing file is normal on first
// run; a corrupt file is logged and discarded so the cache starts empty.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read cache file, starting empty",
				"path", s.path,
				"error", err,
			)
		}
		return
	}

	entries := make(map[string]types.CacheEntry)
	if err := s.serializer.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Failed to parse cache file, starting empty",
			"path", s.path,
			"error", err,
		)
		return
	}

	s.entries = entries
	s.logger.Info("Loaded persistent cache", "path", s.path, "entries", len(entries))
}

// flush writes the snapshot to a temporary file and renames it into
// place so readers never observe a partial write. Callers hold the lock.
func (s *FileStore) flush() error {
	data, err := s.serializer.Marshal(s.entries)
	if err != nil {
		return err
	}

	tmpPath := s.path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

var _ types.PersistentStore = (*FileStore)(nil)
