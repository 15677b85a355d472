package metrics

import (
	"log/slog"
	"time"
)

// LoggingPublisher writes every metric to the log instead of a statsd
// agent. Point metrics land at debug level, events and health payloads
// at info.
type LoggingPublisher struct {
	logger   *slog.Logger
	baseTags []string
}

// NewLoggingPublisher creates a publisher that logs metrics through
// logger. baseTags are merged into every emission.
func NewLoggingPublisher(logger *slog.Logger, baseTags ...string) *LoggingPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingPublisher{
		logger:   logger.With("component", "metrics"),
		baseTags: baseTags,
	}
}

// Gauge logs a gauge value.
func (p *LoggingPublisher) Gauge(name string, value float64, tags ...string) {
	p.emit("gauge", name, tags, "value", value)
}

// Incr logs a counter increment.
func (p *LoggingPublisher) Incr(name string, tags ...string) {
	p.emit("incr", name, tags)
}

// Count logs a counter delta.
func (p *LoggingPublisher) Count(name string, value int64, tags ...string) {
	p.emit("count", name, tags, "value", value)
}

// Histogram logs a distribution sample.
func (p *LoggingPublisher) Histogram(name string, value float64, tags ...string) {
	p.emit("histogram", name, tags, "value", value)
}

// Timing logs a duration sample.
func (p *LoggingPublisher) Timing(name string, duration time.Duration, tags ...string) {
	p.emit("timing", name, tags, "duration_ms", duration.Milliseconds())
}

// Event logs a notable occurrence at info level.
func (p *LoggingPublisher) Event(title, text, alertType string, tags ...string) {
	p.logger.Info("event",
		"title", title,
		"text", text,
		"alert_type", alertType,
		"tags", p.mergeTags(tags),
	)
}

// PublishHealthMetrics logs the periodic health payload at info level.
func (p *LoggingPublisher) PublishHealthMetrics(h *HealthMetrics) {
	if h == nil {
		return
	}

	persistentUp := 0
	if h.PersistentUp {
		persistentUp = 1
	}

	p.logger.Info("health_metrics",
		"cache_entries", h.CacheEntries,
		"cache_usage_ratio", h.CacheUsageRatio,
		"hit_ratio", h.HitRatio,
		"avg_latency_ms", h.AvgLatencyMs,
		"provider_failures", h.ProviderFailures,
		"persistent_up", persistentUp,
	)
}

// Close releases nothing; the publisher holds no resources.
func (p *LoggingPublisher) Close() error {
	return nil
}

// emit writes one point metric at debug level with merged tags last.
func (p *LoggingPublisher) emit(kind, name string, tags []string, attrs ...any) {
	args := make([]any, 0, len(attrs)+4)
	args = append(args, "name", name)
	args = append(args, attrs...)
	args = append(args, "tags", p.mergeTags(tags))
	p.logger.Debug(kind, args...)
}

// mergeTags combines the publisher's base tags with one call's tags in
// a fresh slice; neither input is aliased.
func (p *LoggingPublisher) mergeTags(tags []string) []string {
	if len(tags) == 0 {
		return p.baseTags
	}
	if len(p.baseTags) == 0 {
		return tags
	}
	merged := make([]string, 0, len(p.baseTags)+len(tags))
	merged = append(merged, p.baseTags...)
	return append(merged, tags...)
}

var _ Publisher = (*LoggingPublisher)(nil)
