package metrics

import (
	"time"

	"github.com/LavishGent/wordbook/internal/types"
)

// NoOpTracker is a no-operation metrics recorder for disabled metrics.
type NoOpTracker struct{}

// NewNoOpTracker creates a new no-op tracker.
func NewNoOpTracker() *NoOpTracker {
	return &NoOpTracker{}
}

// RecordCacheHit does nothing.
func (t *NoOpTracker) RecordCacheHit(tier string, latency time.Duration) {}

// RecordCacheMiss does nothing.
func (t *NoOpTracker) RecordCacheMiss(tier string, latency time.Duration) {}

// RecordCacheSet does nothing.
func (t *NoOpTracker) RecordCacheSet(tier string, latency time.Duration) {}

// RecordProviderCall does nothing.
func (t *NoOpTracker) RecordProviderCall(provider string, success bool, latency time.Duration) {}

// RecordBatch does nothing.
func (t *NoOpTracker) RecordBatch(size int, latency time.Duration) {}

// RecordStateChange does nothing.
func (t *NoOpTracker) RecordStateChange(provider, from, to string) {}

// RecordError does nothing.
func (t *NoOpTracker) RecordError(component, op string, err error) {}

// Snapshot returns empty metrics.
func (t *NoOpTracker) Snapshot() Snapshot { return Snapshot{} }

// Reset does nothing.
func (t *NoOpTracker) Reset() {}

// NoOpPublisher is a no-operation metrics publisher for testing or when disabled.
type NoOpPublisher struct{}

// NewNoOpPublisher creates a new no-op publisher.
func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

// Gauge does nothing.
func (p *NoOpPublisher) Gauge(name string, value float64, tags ...string) {}

// Incr does nothing.
func (p *NoOpPublisher) Incr(name string, tags ...string) {}

// Count does nothing.
func (p *NoOpPublisher) Count(name string, value int64, tags ...string) {}

// Histogram does nothing.
func (p *NoOpPublisher) Histogram(name string, value float64, tags ...string) {}

// Timing does nothing.
func (p *NoOpPublisher) Timing(name string, duration time.Duration, tags ...string) {}

// Event does nothing.
func (p *NoOpPublisher) Event(title, text, alertType string, tags ...string) {}

// PublishHealthMetrics does nothing.
func (p *NoOpPublisher) PublishHealthMetrics(h *HealthMetrics) {}

// Close does nothing.
func (p *NoOpPublisher) Close() error { return nil }

// Ensure interfaces are implemented
var _ types.MetricsRecorder = (*NoOpTracker)(nil)
var _ Publisher = (*NoOpPublisher)(nil)
