package metrics

import "time"

// Publisher sends metrics to an external sink. Tags are "key:value"
// strings; the Tag helpers build them.
type Publisher interface {
	Gauge(name string, value float64, tags ...string)
	Incr(name string, tags ...string)
	Count(name string, value int64, tags ...string)
	Histogram(name string, value float64, tags ...string)
	Timing(name string, duration time.Duration, tags ...string)
	Event(title, text, alertType string, tags ...string)
	PublishHealthMetrics(h *HealthMetrics)
	Close() error
}

// HealthMetrics is the periodic health payload published by the
// background publisher: a compressed view of the cache and the provider
// chain suitable for dashboards.
type HealthMetrics struct {
	CacheEntries     int64   `json:"cache_entries"`
	CacheUsageRatio  float64 `json:"cache_usage_ratio"`
	HitRatio         float64 `json:"hit_ratio"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	ProviderFailures int64   `json:"provider_failures"`
	PersistentUp     bool    `json:"persistent_up"`
}
