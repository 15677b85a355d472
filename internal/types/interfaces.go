package types

import (
	"context"
	"time"
)

// Provider is the contract a dictionary lookup service implements.
// Failures carry one of the taxonomy classes from errors.go.
type Provider interface {
	LookupDefinition(ctx context.Context, word string) (string, error)
	LookupPronunciation(ctx context.Context, word string) (string, error)
}

// BatchProvider is an optional capability for providers that can resolve
// many words in one call. The orchestrator checks for it with a type
// assertion at call time; providers without it are driven word by word.
type BatchProvider interface {
	Provider
	LookupBatch(ctx context.Context, words []string) (map[string]WordRecord, error)
}

type CacheInfo interface {
	Name() string
	IsAvailable() bool
}

// PersistentStore is one durable backend for the persistent tier. Get
// returns ErrCacheMiss for absent or expired keys; any other error means
// the store itself misbehaved and the caller degrades to memory-only for
// that operation.
type PersistentStore interface {
	CacheInfo
	Get(ctx context.Context, key string) (CacheEntry, error)
	Set(ctx context.Context, key string, entry CacheEntry) error
	Delete(ctx context.Context, key string) (bool, error)
	EvictExpired(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Stats() PersistentTierStats
	Close() error
}

type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, dest interface{}) error
}

type MetricsRecorder interface {
	RecordCacheHit(tier string, latency time.Duration)
	RecordCacheMiss(tier string, latency time.Duration)
	RecordCacheSet(tier string, latency time.Duration)
	RecordProviderCall(provider string, success bool, latency time.Duration)
	RecordBatch(size int, latency time.Duration)
	RecordStateChange(provider, from, to string)
	RecordError(component, op string, err error)
}
