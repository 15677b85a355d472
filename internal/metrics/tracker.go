// Package metrics collects cache and provider counters and publishes
// them to external sinks.
package metrics

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LavishGent/wordbook/internal/types"
)

const (
	defaultLatencyBufferSize = 10000
)

// Tracker accumulates counters from the cache and lookup paths and keeps
// a bounded ring of recent cache latencies for percentile reporting. An
// optional Publisher receives a per-call metric for every recorded
// operation; the counters are always kept regardless.
type Tracker struct {
	publisher Publisher

	memoryHits       atomic.Int64
	memoryMisses     atomic.Int64
	persistentHits   atomic.Int64
	persistentMisses atomic.Int64
	setCount         atomic.Int64

	providerCalls    atomic.Int64
	providerFailures atomic.Int64
	providerNanos    atomic.Int64

	batchLookups atomic.Int64
	stateChanges atomic.Int64
	errorCount   atomic.Int64

	latencyMu     sync.RWMutex
	latencyBuffer []time.Duration
	latencyIndex  int
	latencyCount  int
}

func NewTracker() *Tracker {
	return &Tracker{
		latencyBuffer: make([]time.Duration, defaultLatencyBufferSize),
	}
}

// NewTrackerWithPublisher creates a tracker that forwards every recorded
// operation to pub as it happens.
func NewTrackerWithPublisher(pub Publisher) *Tracker {
	t := NewTracker()
	t.publisher = pub
	return t
}

func (t *Tracker) RecordCacheHit(tier string, latency time.Duration) {
	if tier == "memory" {
		t.memoryHits.Add(1)
	} else {
		t.persistentHits.Add(1)
	}
	t.recordLatency(latency)

	if t.publisher != nil {
		t.publisher.Incr("cache.hit", TierTag(tier))
		t.publisher.Timing("cache.latency", latency, TierTag(tier), StatusTag("hit"))
	}
}

func (t *Tracker) RecordCacheMiss(tier string, latency time.Duration) {
	if tier == "memory" {
		t.memoryMisses.Add(1)
	} else {
		t.persistentMisses.Add(1)
	}
	t.recordLatency(latency)

	if t.publisher != nil {
		t.publisher.Incr("cache.miss", TierTag(tier))
		t.publisher.Timing("cache.latency", latency, TierTag(tier), StatusTag("miss"))
	}
}

func (t *Tracker) RecordCacheSet(tier string, latency time.Duration) {
	t.setCount.Add(1)
	t.recordLatency(latency)

	if t.publisher != nil {
		t.publisher.Incr("cache.set", TierTag(tier))
		t.publisher.Timing("cache.latency", latency, TierTag(tier), StatusTag("set"))
	}
}

func (t *Tracker) RecordProviderCall(provider string, success bool, latency time.Duration) {
	t.providerCalls.Add(1)
	t.providerNanos.Add(int64(latency))

	status := "ok"
	if !success {
		t.providerFailures.Add(1)
		status = "error"
	}

	if t.publisher != nil {
		t.publisher.Incr("provider.call", ProviderTag(provider), StatusTag(status))
		t.publisher.Timing("provider.latency", latency, ProviderTag(provider))
	}
}

func (t *Tracker) RecordBatch(size int, latency time.Duration) {
	t.batchLookups.Add(1)

	if t.publisher != nil {
		t.publisher.Histogram("batch.size", float64(size))
		t.publisher.Timing("batch.latency", latency)
	}
}

func (t *Tracker) RecordStateChange(provider, from, to string) {
	t.stateChanges.Add(1)

	if t.publisher != nil {
		t.publisher.Event("Provider state change",
			fmt.Sprintf("%s: %s -> %s", provider, from, to),
			alertTypeFor(to),
			ProviderTag(provider), Tag("from", from), Tag("to", to))
	}
}

func (t *Tracker) RecordError(component, op string, err error) {
	t.errorCount.Add(1)

	if t.publisher != nil {
		t.publisher.Incr("errors", ComponentTag(component), OperationTag(op))
	}
}

func alertTypeFor(status string) string {
	switch status {
	case "failed":
		return "error"
	case "degraded":
		return "warning"
	default:
		return "info"
	}
}

// recordLatency adds a latency measurement using a circular buffer.
// This is O(1) time complexity with no memory allocations.
func (t *Tracker) recordLatency(latency time.Duration) {
	t.latencyMu.Lock()
	t.latencyBuffer[t.latencyIndex] = latency
	t.latencyIndex = (t.latencyIndex + 1) % len(t.latencyBuffer)
	if t.latencyCount < len(t.latencyBuffer) {
		t.latencyCount++
	}
	t.latencyMu.Unlock()
}

// Snapshot is a point-in-time copy of the tracker's counters with cache
// latency percentiles computed over the retained ring.
type Snapshot struct {
	Timestamp        time.Time `json:"timestamp"`
	MemoryHits       int64     `json:"memory_hits"`
	MemoryMisses     int64     `json:"memory_misses"`
	PersistentHits   int64     `json:"persistent_hits"`
	PersistentMisses int64     `json:"persistent_misses"`
	SetCount         int64     `json:"set_count"`
	ProviderCalls    int64     `json:"provider_calls"`
	ProviderFailures int64     `json:"provider_failures"`
	BatchLookups     int64     `json:"batch_lookups"`
	StateChanges     int64     `json:"state_changes"`
	ErrorCount       int64     `json:"error_count"`

	AvgLatencyMs         float64 `json:"avg_latency_ms"`
	P50LatencyMs         float64 `json:"p50_latency_ms"`
	P95LatencyMs         float64 `json:"p95_latency_ms"`
	P99LatencyMs         float64 `json:"p99_latency_ms"`
	AvgProviderLatencyMs float64 `json:"avg_provider_latency_ms"`
}

// HitRatio is the fraction of cache reads answered by either tier.
func (s Snapshot) HitRatio() float64 {
	hits := s.MemoryHits + s.PersistentHits
	total := hits + s.MemoryMisses + s.PersistentMisses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Snapshot returns current metrics snapshot.
func (t *Tracker) Snapshot() Snapshot {
	// Use RLock for reading - allows concurrent snapshots
	t.latencyMu.RLock()
	count := t.latencyCount
	latencyCopy := make([]time.Duration, count)
	// Copy from circular buffer in correct order
	if count > 0 {
		if count < len(t.latencyBuffer) {
			// Buffer not full yet - data starts at 0
			copy(latencyCopy, t.latencyBuffer[:count])
		} else {
			// Buffer is full - oldest data starts at latencyIndex
			firstPart := len(t.latencyBuffer) - t.latencyIndex
			copy(latencyCopy[:firstPart], t.latencyBuffer[t.latencyIndex:])
			copy(latencyCopy[firstPart:], t.latencyBuffer[:t.latencyIndex])
		}
	}
	t.latencyMu.RUnlock()

	snapshot := Snapshot{
		Timestamp:        time.Now(),
		MemoryHits:       t.memoryHits.Load(),
		MemoryMisses:     t.memoryMisses.Load(),
		PersistentHits:   t.persistentHits.Load(),
		PersistentMisses: t.persistentMisses.Load(),
		SetCount:         t.setCount.Load(),
		ProviderCalls:    t.providerCalls.Load(),
		ProviderFailures: t.providerFailures.Load(),
		BatchLookups:     t.batchLookups.Load(),
		StateChanges:     t.stateChanges.Load(),
		ErrorCount:       t.errorCount.Load(),
	}

	// Calculate latency percentiles
	if len(latencyCopy) > 0 {
		snapshot.AvgLatencyMs = float64(avgDuration(latencyCopy).Milliseconds())
		snapshot.P50LatencyMs = float64(percentile(latencyCopy, 50).Milliseconds())
		snapshot.P95LatencyMs = float64(percentile(latencyCopy, 95).Milliseconds())
		snapshot.P99LatencyMs = float64(percentile(latencyCopy, 99).Milliseconds())
	}
	if calls := snapshot.ProviderCalls; calls > 0 {
		avg := time.Duration(t.providerNanos.Load() / calls)
		snapshot.AvgProviderLatencyMs = float64(avg.Milliseconds())
	}

	return snapshot
}

// Reset clears all metrics.
func (t *Tracker) Reset() {
	t.memoryHits.Store(0)
	t.memoryMisses.Store(0)
	t.persistentHits.Store(0)
	t.persistentMisses.Store(0)
	t.setCount.Store(0)
	t.providerCalls.Store(0)
	t.providerFailures.Store(0)
	t.providerNanos.Store(0)
	t.batchLookups.Store(0)
	t.stateChanges.Store(0)
	t.errorCount.Store(0)

	t.latencyMu.Lock()
	t.latencyIndex = 0
	t.latencyCount = 0
	t.latencyMu.Unlock()
}

// Helper functions for latency calculations

func avgDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total / time.Duration(len(durations))
}

func percentile(durations []time.Duration, p int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	// Sort a copy
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	slices.Sort(sorted)

	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}

// Ensure Tracker implements MetricsRecorder
var _ types.MetricsRecorder = (*Tracker)(nil)
