package wordbook

import (
	"context"
	"log/slog"

	"github.com/LavishGent/wordbook/internal/app"
	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/lookup"
	"github.com/LavishGent/wordbook/internal/metrics"
	"github.com/LavishGent/wordbook/internal/metrics/datadog"
	"github.com/LavishGent/wordbook/internal/provider"
	"github.com/LavishGent/wordbook/internal/report"
	"github.com/LavishGent/wordbook/internal/types"
)

// Client is the assembled vocabulary service: the tiered cache, the
// provider chain, the metrics pipeline, and the file processing pipeline
// behind one handle. All methods are safe for concurrent use.
type Client struct {
	manager    *lookup.Manager
	pipeline   *app.App
	config     *config.Config
	logger     *slog.Logger
	tracker    *metrics.Tracker
	publisher  metrics.Publisher
	background *metrics.BackgroundPublisher
}

func newClient(cfg *config.Config, opts *ManagerOptions) (*Client, error) {
	applyOverrides(cfg, opts)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		config: cfg,
		logger: logger,
	}

	recorder := opts.Metrics
	if recorder == nil && cfg.Metrics.Enabled {
		var pub metrics.Publisher
		if cfg.Metrics.DataDog.Enabled {
			ddPub, err := datadog.NewPublisher(&cfg.Metrics.DataDog, logger)
			if err != nil {
				return nil, err
			}
			pub = ddPub
		} else {
			pub = metrics.NewLoggingPublisher(logger)
		}
		c.publisher = pub
		c.tracker = metrics.NewTrackerWithPublisher(pub)
		recorder = c.tracker
	}

	c.manager = lookup.NewManager(cfg, nil, recorder, logger)
	c.pipeline = app.New(c.manager, cfg, logger)

	if !opts.SkipDefaultProviders {
		c.registerDefaults()
	}

	if c.tracker != nil && cfg.Metrics.PublishInterval > 0 {
		c.background = metrics.NewBackgroundPublisher(c.publisher, cfg.Metrics.PublishInterval, c.healthMetrics, logger)
		c.background.Start(context.Background())
	}

	return c, nil
}

// applyOverrides folds construction options into the configuration before
// anything is built from it.
func applyOverrides(cfg *config.Config, opts *ManagerOptions) {
	if opts.CachePath != "" {
		cfg.Persistent.Backend = "file"
		cfg.Persistent.Path = opts.CachePath
	}
	if opts.RedisAddress != "" {
		cfg.Persistent.Backend = "redis"
		cfg.Redis.Address = opts.RedisAddress
	}
	if opts.RedisPassword.Value() != "" {
		cfg.Redis.Password = opts.RedisPassword
	}
	if opts.RedisDB != 0 {
		cfg.Redis.DB = opts.RedisDB
	}
	if opts.DisablePersistence {
		cfg.Persistent.Backend = "none"
	}
	if opts.DisableRetries {
		cfg.Lookup.MaxRetries = 0
	}
}

// registerDefaults wires the configured provider set: the builtin local
// dictionary as the always-available fallback, Free Dictionary as the
// unauthenticated middle tier, and EasyPronunciation as the primary when
// an API key is present. A provider that fails to initialize is skipped
// with a warning rather than failing construction.
func (c *Client) registerDefaults() {
	if c.config.Providers.Local.Enabled {
		local, err := provider.NewLocalDictionary(c.config.Providers.Local)
		if err != nil {
			c.logger.Warn("Local dictionary unavailable", "error", err)
		} else {
			c.manager.RegisterProvider(local.Name(), local, types.PriorityFallback, true)
		}
	}

	if c.config.Providers.FreeDictionary.Enabled {
		free := provider.NewFreeDictionary(c.config.Providers.FreeDictionary)
		c.manager.RegisterProvider(free.Name(), free, types.PrioritySecondary, true)
	}

	if epCfg := c.config.Providers.EasyPronunciation; epCfg.Enabled && epCfg.APIKey.Value() != "" {
		easy := provider.NewEasyPronunciation(epCfg)
		c.manager.RegisterProvider(easy.Name(), easy, types.PriorityPrimary, true)
	}
}

// GetDefinition returns the definition for word, or "" when no provider
// can resolve it.
func (c *Client) GetDefinition(ctx context.Context, word string) string {
	return c.manager.GetDefinition(ctx, word)
}

// GetPronunciation returns the pronunciation for word, or "" when no
// provider can resolve it.
func (c *Client) GetPronunciation(ctx context.Context, word string) string {
	return c.manager.GetPronunciation(ctx, word)
}

// Lookup resolves both the definition and the pronunciation for word.
func (c *Client) Lookup(ctx context.Context, word string) WordRecord {
	return c.manager.Lookup(ctx, word)
}

// BatchLookup resolves many words at once. The result maps each
// normalized word to its record; words no provider knew are present with
// empty fields.
func (c *Client) BatchLookup(ctx context.Context, words []string) map[string]WordRecord {
	return c.manager.BatchLookup(ctx, words)
}

// ProcessFile runs the full pipeline on one input file: extract words,
// normalize them, look everything up, and write a markdown vocabulary
// report. An empty outputPath places the report next to the input.
func (c *Client) ProcessFile(ctx context.Context, inputPath, outputPath string) (*ProcessingResult, error) {
	return c.pipeline.ProcessFile(ctx, inputPath, outputPath)
}

// RenderPDF converts a markdown report produced by ProcessFile into a PDF
// next to it and returns the PDF path.
func (c *Client) RenderPDF(markdownPath string) (string, error) {
	return report.RenderPDF(markdownPath, c.config.Report)
}

// RegisterProvider adds a dictionary service to the lookup chain.
// Registering a name again replaces the previous provider.
func (c *Client) RegisterProvider(name string, p Provider, priority ServicePriority, enabled bool) {
	c.manager.RegisterProvider(name, p, priority, enabled)
}

// EnableService returns a disabled provider to the routing order.
func (c *Client) EnableService(name string) error {
	return c.manager.EnableService(name)
}

// DisableService removes a provider from the routing order until it is
// enabled again.
func (c *Client) DisableService(name string) error {
	return c.manager.DisableService(name)
}

// GetServiceStatus reports a snapshot of every registered provider.
func (c *Client) GetServiceStatus() map[string]ServiceSnapshot {
	return c.manager.GetServiceStatus()
}

// GetStatistics reports a snapshot of the whole lookup subsystem.
func (c *Client) GetStatistics() Statistics {
	return c.manager.GetStatistics()
}

// MetricsSnapshot reports the collected counters and latency percentiles.
// It is zero when metrics are disabled.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c.tracker == nil {
		return MetricsSnapshot{}
	}
	return c.tracker.Snapshot()
}

// ClearCache removes every cached entry from both tiers.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.manager.ClearCache(ctx)
}

// CleanupCache evicts expired entries from both tiers.
func (c *Client) CleanupCache(ctx context.Context) (CleanupResult, error) {
	return c.manager.CleanupCache(ctx)
}

// Close stops the background publisher and releases the cache and metrics
// resources. The client must not be used afterwards.
func (c *Client) Close() error {
	if c.background != nil {
		c.background.Stop()
	}

	err := c.manager.Close()

	if c.publisher != nil {
		if cerr := c.publisher.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// healthMetrics condenses the subsystem statistics into the periodic
// health payload.
func (c *Client) healthMetrics() *metrics.HealthMetrics {
	stats := c.manager.GetStatistics()

	var failures int64
	for _, count := range stats.ServiceFailures {
		failures += count
	}

	h := &metrics.HealthMetrics{
		CacheEntries:     int64(stats.Cache.Memory.Total + stats.Cache.Persistent.Total),
		CacheUsageRatio:  stats.Cache.Memory.UsageRatio,
		HitRatio:         stats.CacheHitRate,
		ProviderFailures: failures,
		PersistentUp:     stats.Cache.Persistent.Available,
	}
	if c.tracker != nil {
		h.AvgLatencyMs = c.tracker.Snapshot().AvgLatencyMs
	}
	return h
}
