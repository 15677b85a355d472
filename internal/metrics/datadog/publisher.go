// Package datadog ships metrics to a DataDog agent over StatsD.
package datadog

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// sampleRate of 1 sends every datapoint; aggregation happens agent-side.
const sampleRate = 1

// Publisher forwards metrics to a StatsD agent. Sends are fire-and-forget:
// a failed send is logged at debug level and never surfaces to the caller.
type Publisher struct {
	client   *statsd.Client
	logger   *slog.Logger
	baseTags []string
}

var _ metrics.Publisher = (*Publisher)(nil)

// NewPublisher connects to the agent described by cfg. When DataDog is
// disabled it returns a no-op publisher so callers never need a nil check.
func NewPublisher(cfg *config.DataDogConfig, logger *slog.Logger) (metrics.Publisher, error) {
	if !cfg.Enabled {
		return metrics.NewNoOpPublisher(), nil
	}

	if logger == nil {
		logger = slog.Default()
	}

	addr := net.JoinHostPort(cfg.AgentHost, strconv.Itoa(cfg.Port))
	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Prefix + "."),
	}
	if len(cfg.Tags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.Tags))
	}

	client, err := statsd.New(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect statsd agent %s: %w", addr, err)
	}

	logger.Info("DataDog publisher connected",
		"address", addr,
		"prefix", cfg.Prefix,
		"tags", cfg.Tags,
	)

	return &Publisher{
		client:   client,
		baseTags: cfg.Tags,
		logger:   logger.With("component", "datadog"),
	}, nil
}

// Gauge reports the current value of name.
func (p *Publisher) Gauge(name string, value float64, tags ...string) {
	p.sent("gauge", name, p.client.Gauge(name, value, p.tagsFor(tags), sampleRate))
}

// Incr bumps the counter name by one.
func (p *Publisher) Incr(name string, tags ...string) {
	p.sent("incr", name, p.client.Incr(name, p.tagsFor(tags), sampleRate))
}

// Count adds value to the counter name.
func (p *Publisher) Count(name string, value int64, tags ...string) {
	p.sent("count", name, p.client.Count(name, value, p.tagsFor(tags), sampleRate))
}

// Histogram adds value to the distribution for name.
func (p *Publisher) Histogram(name string, value float64, tags ...string) {
	p.sent("histogram", name, p.client.Histogram(name, value, p.tagsFor(tags), sampleRate))
}

// Timing records how long an operation took.
func (p *Publisher) Timing(name string, duration time.Duration, tags ...string) {
	p.sent("timing", name, p.client.Timing(name, duration, p.tagsFor(tags), sampleRate))
}

// Event posts an event to the DataDog event stream.
func (p *Publisher) Event(title, text, alertType string, tags ...string) {
	p.sent("event", title, p.client.Event(&statsd.Event{
		Title:     title,
		Text:      text,
		AlertType: statsd.EventAlertType(alertType),
		Tags:      p.tagsFor(tags),
	}))
}

// PublishHealthMetrics pushes the periodic health snapshot as gauges.
func (p *Publisher) PublishHealthMetrics(h *metrics.HealthMetrics) {
	if h == nil {
		return
	}

	p.Gauge("cache.entries", float64(h.CacheEntries))
	p.Gauge("cache.usage_ratio", clamp(h.CacheUsageRatio, 0, 1))
	p.Gauge("performance.hit_ratio", clamp(h.HitRatio, 0, 1))
	p.Gauge("performance.average_latency_ms", max(0, h.AvgLatencyMs))
	p.Gauge("provider.failures", float64(h.ProviderFailures))

	persistentUp := 0.0
	if h.PersistentUp {
		persistentUp = 1.0
	}
	p.Gauge("persistent.status", persistentUp)
}

// Close flushes buffered metrics and shuts down the client.
func (p *Publisher) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// sent records the outcome of a send without propagating it.
func (p *Publisher) sent(kind, name string, err error) {
	if err != nil {
		p.logger.Debug("statsd send failed", "kind", kind, "name", name, "error", err)
	}
}

func (p *Publisher) tagsFor(tags []string) []string {
	if len(tags) == 0 {
		return p.baseTags
	}
	if len(p.baseTags) == 0 {
		return tags
	}
	merged := make([]string, 0, len(p.baseTags)+len(tags))
	merged = append(merged, p.baseTags...)
	merged = append(merged, tags...)
	return merged
}

func clamp(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
