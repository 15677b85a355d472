package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

const (
	disconnectErrorThreshold = 5
	healthCheckInterval      = 30 * time.Second
)

// RedisStore implements a Redis-backed persistent cache layer. Entries
// are stored as JSON with a matching server-side TTL, so Redis itself
// garbage-collects expired keys. An unreachable server degrades the
// store instead of failing construction; a background probe restores it
// once the server comes back.
type RedisStore struct {
	client     *redis.Client
	config     config.RedisConfig
	serializer types.Serializer
	logger     *slog.Logger

	connected  atomic.Bool
	errorCount atomic.Int64

	stopCh chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewRedisStore creates a Redis store and attempts an initial
// connection. A failed ping is logged, not returned, so callers keep a
// usable (degraded) store.
func NewRedisStore(cfg config.RedisConfig, serializer types.Serializer, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	if serializer == nil {
		serializer = NewJSONSerializer()
	}

	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password.Value(),
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	s := &RedisStore{
		client:     redis.NewClient(opts),
		config:     cfg,
		serializer: serializer,
		logger:     logger.With("component", "redis-cache"),
		stopCh:     make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.Warn("Redis initial connection failed, starting degraded", "error", err)
	} else {
		s.connected.Store(true)
		s.logger.Info("Redis connected", "address", cfg.Address)
	}

	s.wg.Add(1)
	go s.healthCheckWorker()

	return s
}

// Name returns the cache layer name.
func (s *RedisStore) Name() string {
	return "redis"
}

// IsAvailable returns true while the server is reachable.
func (s *RedisStore) IsAvailable() bool {
	return s.connected.Load()
}

func (s *RedisStore) prefixKey(key string) string {
	return s.config.KeyPrefix + key
}

// Get retrieves an entry from Redis.
func (s *RedisStore) Get(ctx context.Context, key string) (types.CacheEntry, error) {
	if !s.connected.Load() {
		return types.CacheEntry{}, types.ErrStoreUnavailable
	}

	data, err := s.client.Get(ctx, s.prefixKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.CacheEntry{}, types.ErrCacheMiss
		}
		s.handleError(err)
		return types.CacheEntry{}, types.NewCacheError("Get", key, "redis", err)
	}

	var entry types.CacheEntry
	if err := s.serializer.Unmarshal(data, &entry); err != nil {
		return types.CacheEntry{}, types.NewCacheError("Get", key, "redis", err)
	}

	// The server TTL normally handles expiry; the entry's own clock is
	// still checked so a stale record is never surfaced.
	if entry.IsExpired() {
		return types.CacheEntry{}, types.ErrCacheMiss
	}

	s.clearError()
	return entry, nil
}

// Set stores an entry with a server-side TTL mirroring the entry's own.
func (s *RedisStore) Set(ctx context.Context, key string, entry types.CacheEntry) error {
	if !s.connected.Load() {
		return types.ErrStoreUnavailable
	}

	data, err := s.serializer.Marshal(entry)
	if err != nil {
		return types.NewCacheError("Set", key, "redis", err)
	}

	ttl := entry.TTL
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, s.prefixKey(key), data, ttl).Err(); err != nil {
		s.handleError(err)
		return types.NewCacheError("Set", key, "redis", err)
	}

	s.clearError()
	return nil
}

// Delete removes an entry. It reports whether the key was present.
func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	if !s.connected.Load() {
		return false, types.ErrStoreUnavailable
	}

	removed, err := s.client.Del(ctx, s.prefixKey(key)).Result()
	if err != nil {
		s.handleError(err)
		return false, types.NewCacheError("Delete", key, "redis", err)
	}

	s.clearError()
	return removed > 0, nil
}

// EvictExpired is a no-op for Redis: the server expires keys itself, so
// there is never anything to sweep.
func (s *RedisStore) EvictExpired(ctx context.Context) (int, error) {
	if !s.connected.Load() {
		return 0, types.ErrStoreUnavailable
	}
	return 0, nil
}

// Clear removes every key under the configured prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	if !s.connected.Load() {
		return types.ErrStoreUnavailable
	}

	pattern := s.prefixKey("*")
	var cursor uint64
	var deleted int64

	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			s.handleError(err)
			return types.NewCacheError("Clear", pattern, "redis", err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.handleError(err)
				return types.NewCacheError("Clear", pattern, "redis", err)
			}
			deleted += int64(len(keys))
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	s.logger.Debug("Cleared redis keys", "pattern", pattern, "deleted", deleted)
	s.clearError()
	return nil
}

// Stats counts keys under the prefix. Redis expires entries server-side,
// so Expired is always zero.
func (s *RedisStore) Stats() types.PersistentTierStats {
	stats := types.PersistentTierStats{
		Backend:   "redis",
		Available: s.connected.Load(),
	}
	if !stats.Available {
		return stats
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.DialTimeout)
	defer cancel()

	pattern := s.prefixKey("*")
	var cursor uint64
	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return stats
		}
		stats.Total += len(keys)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	stats.Active = stats.Total
	return stats
}

// Ping checks connectivity to the Redis server.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close stops the health probe and closes the client.
func (s *RedisStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.connected.Store(false)
	close(s.stopCh)
	s.wg.Wait()

	return s.client.Close()
}

func (s *RedisStore) healthCheckWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.performHealthCheck()
		}
	}
}

func (s *RedisStore) performHealthCheck() {
	wasConnected := s.connected.Load()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.DialTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		if wasConnected {
			s.logger.Warn("Redis health check failed", "error", err)
			s.connected.Store(false)
		}
		return
	}

	if !wasConnected {
		s.connected.Store(true)
		s.errorCount.Store(0)
		s.logger.Info("Redis connection restored via health check")
	}
}

func (s *RedisStore) handleError(err error) {
	count := s.errorCount.Add(1)
	if count >= disconnectErrorThreshold {
		if s.connected.CompareAndSwap(true, false) {
			s.logger.Warn("Redis marked as disconnected after errors",
				"error_count", count,
				"last_error", err,
			)
		}
	}
}

func (s *RedisStore) clearError() {
	if s.errorCount.Swap(0) > 0 {
		if s.connected.CompareAndSwap(false, true) {
			s.logger.Info("Redis connection restored")
		}
	}
}

var _ types.PersistentStore = (*RedisStore)(nil)
