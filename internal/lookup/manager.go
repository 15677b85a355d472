package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/LavishGent/wordbook/internal/cache"
	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/resilience"
	"github.com/LavishGent/wordbook/internal/types"
)

// Manager routes word lookups through the tiered cache and a
// prioritized chain of providers, tracking each provider's health.
//
// Lookups are soft-failing: a word no provider can resolve yields an
// empty string, never an error. Providers are consulted in priority
// order (registration order breaks ties), skipping ones the health
// state machine has taken out of routing. The first provider to return
// a value wins; the value is cached write-through before it is
// returned.
type Manager struct {
	cache   *cache.TieredCache
	config  *config.Config
	retryer *resilience.Retryer
	metrics types.MetricsRecorder
	logger  *slog.Logger

	mu        sync.RWMutex
	services  map[string]*ServiceDescriptor
	nextOrder int

	sfGroup singleflight.Group

	totalRequests   atomic.Int64
	cacheHits       atomic.Int64
	lastCleanupNano atomic.Int64

	closed atomic.Bool
}

// NewManager creates a lookup manager on top of an existing tiered
// cache. A nil tiered cache is constructed from cfg; a nil cfg uses
// defaults; metrics may be nil. The manager owns the cache and closes
// it on Close.
func NewManager(cfg *config.Config, tiered *cache.TieredCache, metrics types.MetricsRecorder, logger *slog.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tiered == nil {
		tiered = cache.NewTieredCache(cfg, metrics, logger)
	}

	return &Manager{
		cache:    tiered,
		config:   cfg,
		retryer:  resilience.NewRetryer(cfg.Lookup, logger),
		metrics:  metrics,
		logger:   logger.With("component", "lookup-manager"),
		services: make(map[string]*ServiceDescriptor),
	}
}

// RegisterProvider adds a provider to the routing table. Registering an
// existing name replaces the provider and resets its statistics but
// keeps its position in the tie-break order.
func (m *Manager) RegisterProvider(name string, provider types.Provider, priority types.ServicePriority, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order := m.nextOrder
	if existing, ok := m.services[name]; ok {
		order = existing.order
	} else {
		m.nextOrder++
	}

	m.services[name] = newServiceDescriptor(name, provider, priority, order, enabled)
	m.logger.Info("Registered provider",
		"name", name, "priority", priority.String(), "enabled", enabled)
}

// GetDefinition returns the definition for word, from cache or the
// provider chain. An unresolvable word yields "".
func (m *Manager) GetDefinition(ctx context.Context, word string) string {
	return m.lookup(ctx, types.KindDefinition, word)
}

// GetPronunciation returns the pronunciation for word, from cache or
// the provider chain. An unresolvable word yields "".
func (m *Manager) GetPronunciation(ctx context.Context, word string) string {
	return m.lookup(ctx, types.KindPronunciation, word)
}

// Lookup resolves both fields of a single word.
func (m *Manager) Lookup(ctx context.Context, word string) types.WordRecord {
	rec := types.NewWordRecord(word)
	if rec.Word == "" {
		return rec
	}

	if definition := m.GetDefinition(ctx, rec.Word); definition != "" {
		rec.Definition = definition
		rec.FoundDefinition = true
	}
	if pronunciation := m.GetPronunciation(ctx, rec.Word); pronunciation != "" {
		rec.Pronunciation = pronunciation
		rec.FoundPronunciation = true
	}

	return rec
}

func (m *Manager) lookup(ctx context.Context, kind types.QueryKind, word string) string {
	if m.closed.Load() {
		return ""
	}

	normalized := types.NormalizeWord(word)
	if normalized == "" {
		return ""
	}

	m.totalRequests.Add(1)

	if value, ok := m.cachedValue(ctx, kind, normalized); ok {
		m.cacheHits.Add(1)
		return value
	}

	// Concurrent cold lookups for the same query share one provider call.
	sfKey := kind.String() + ":" + normalized
	result, _, _ := m.sfGroup.Do(sfKey, func() (any, error) {
		return m.resolve(ctx, kind, normalized), nil
	})

	value, _ := result.(string)
	return value
}

// resolve walks the provider chain for a query that missed the cache.
// Runs outside all cache locks.
func (m *Manager) resolve(ctx context.Context, kind types.QueryKind, word string) string {
	// A flight that queued behind an identical lookup can be already
	// answered by the time it runs.
	if value, ok := m.cachedValue(ctx, kind, word); ok {
		return value
	}

	for _, desc := range m.orderedDescriptors() {
		if ctx.Err() != nil {
			return ""
		}
		if !desc.routable(m.config.Lookup.RecoveryWindow) {
			continue
		}

		value, err := m.callProvider(ctx, desc, kind, word)
		if err != nil {
			m.recordProviderFailure(desc, kind, word, err)
			continue
		}

		m.recordProviderSuccess(desc)
		if value == "" {
			continue
		}

		if err := m.cacheValue(ctx, kind, word, value); err != nil {
			m.logger.Debug("Failed to cache lookup result",
				"word", word, "kind", kind.String(), "error", err)
		}
		return value
	}

	return ""
}

// callProvider runs one provider call under the per-call timeout, with
// transient-only retries.
func (m *Manager) callProvider(ctx context.Context, desc *ServiceDescriptor, kind types.QueryKind, word string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.config.Lookup.Timeout)
	defer cancel()

	var value string
	start := time.Now()

	err := m.retryer.Do(callCtx, func(ctx context.Context) error {
		var callErr error
		switch kind {
		case types.KindDefinition:
			value, callErr = desc.provider.LookupDefinition(ctx, word)
		case types.KindPronunciation:
			value, callErr = desc.provider.LookupPronunciation(ctx, word)
		}
		return callErr
	})

	if m.metrics != nil {
		m.metrics.RecordProviderCall(desc.name, err == nil, time.Since(start))
	}

	return value, err
}

// BatchLookup resolves a set of words. The input is normalized and
// deduplicated; every distinct word appears exactly once in the result,
// as a zero-value record when nothing could be resolved.
//
// Resolution is staged: complete cache hits first, then one shot at the
// highest-priority routable provider with batch capability, then the
// normal per-word fallback chain on a bounded worker pool. Partial
// results are committed to the cache as they arrive, so an interrupted
// batch resumes where it left off.
func (m *Manager) BatchLookup(ctx context.Context, words []string) map[string]types.WordRecord {
	results := make(map[string]types.WordRecord)
	if m.closed.Load() {
		return results
	}

	seen := make(map[string]struct{}, len(words))
	distinct := make([]string, 0, len(words))
	for _, w := range words {
		n := types.NormalizeWord(w)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}
	if len(distinct) == 0 {
		return results
	}

	start := time.Now()

	var missing []string
	for _, w := range distinct {
		m.totalRequests.Add(2)
		if definition, pronunciation, ok := m.cache.GetWordInfo(ctx, w); ok {
			m.cacheHits.Add(2)
			results[w] = types.WordRecord{
				Word:               w,
				Definition:         definition,
				Pronunciation:      pronunciation,
				FoundDefinition:    true,
				FoundPronunciation: true,
			}
		} else {
			missing = append(missing, w)
		}
	}

	if len(missing) > 0 {
		m.batchFill(ctx, missing)

		workers := m.config.Lookup.BatchWorkers
		if workers <= 0 {
			workers = 1
		}

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for _, w := range missing {
			word := w
			g.Go(func() error {
				rec := m.Lookup(gctx, word)
				mu.Lock()
				results[word] = rec
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	if m.metrics != nil {
		m.metrics.RecordBatch(len(distinct), time.Since(start))
	}
	m.logger.Debug("Batch lookup complete",
		"words", len(distinct), "cache_hits", len(distinct)-len(missing),
		"duration", time.Since(start))

	return results
}

// batchFill asks the highest-priority routable provider with batch
// capability to pre-resolve words, committing whatever it returns to
// the cache. Words it cannot fill fall through to the per-word chain.
func (m *Manager) batchFill(ctx context.Context, words []string) {
	batch, desc := m.routableBatchProvider()
	if batch == nil {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, m.config.Lookup.Timeout)
	defer cancel()

	start := time.Now()
	records, err := batch.LookupBatch(callCtx, words)

	if m.metrics != nil {
		m.metrics.RecordProviderCall(desc.name, err == nil, time.Since(start))
	}

	if err != nil {
		m.recordProviderFailure(desc, types.KindDefinition, "", err)
		return
	}

	m.recordProviderSuccess(desc)
	for _, w := range words {
		rec, ok := records[w]
		if !ok {
			continue
		}
		if err := m.cache.SetWordInfo(ctx, w, rec.Definition, rec.Pronunciation); err != nil {
			m.logger.Debug("Failed to cache batch result", "word", w, "error", err)
		}
	}
}

func (m *Manager) routableBatchProvider() (types.BatchProvider, *ServiceDescriptor) {
	for _, desc := range m.orderedDescriptors() {
		if !desc.routable(m.config.Lookup.RecoveryWindow) {
			continue
		}
		if batch, ok := desc.provider.(types.BatchProvider); ok {
			return batch, desc
		}
	}
	return nil, nil
}

// orderedDescriptors returns all descriptors sorted by priority, with
// registration order breaking ties.
func (m *Manager) orderedDescriptors() []*ServiceDescriptor {
	m.mu.RLock()
	descs := make([]*ServiceDescriptor, 0, len(m.services))
	for _, d := range m.services {
		descs = append(descs, d)
	}
	m.mu.RUnlock()

	sort.Slice(descs, func(i, j int) bool {
		if descs[i].priority != descs[j].priority {
			return descs[i].priority < descs[j].priority
		}
		return descs[i].order < descs[j].order
	})

	return descs
}

func (m *Manager) cachedValue(ctx context.Context, kind types.QueryKind, word string) (string, bool) {
	switch kind {
	case types.KindDefinition:
		return m.cache.GetDefinition(ctx, word)
	case types.KindPronunciation:
		return m.cache.GetPronunciation(ctx, word)
	default:
		return "", false
	}
}

func (m *Manager) cacheValue(ctx context.Context, kind types.QueryKind, word, value string) error {
	switch kind {
	case types.KindDefinition:
		return m.cache.SetDefinition(ctx, word, value)
	case types.KindPronunciation:
		return m.cache.SetPronunciation(ctx, word, value)
	default:
		return nil
	}
}

func (m *Manager) recordProviderSuccess(desc *ServiceDescriptor) {
	from, to := desc.recordSuccess()
	if from != to {
		m.logger.Info("Provider recovered",
			"provider", desc.name, "from", from.String(), "to", to.String())
		if m.metrics != nil {
			m.metrics.RecordStateChange(desc.name, from.String(), to.String())
		}
	}
}

func (m *Manager) recordProviderFailure(desc *ServiceDescriptor, kind types.QueryKind, word string, err error) {
	switch {
	case types.IsAuthentication(err):
		m.logger.Error("Provider authentication rejected, locked until re-enabled",
			"provider", desc.name, "error", err)
	case types.IsWordNotFound(err):
		m.logger.Debug("Provider has no entry",
			"provider", desc.name, "word", word)
	default:
		m.logger.Warn("Provider call failed",
			"provider", desc.name, "kind", kind.String(), "word", word, "error", err)
	}

	if m.metrics != nil {
		m.metrics.RecordError("lookup", kind.String(), err)
	}

	from, to := desc.recordFailure(m.config.Lookup.FailureThreshold, types.IsAuthentication(err))
	if from != to {
		m.logger.Warn("Provider status changed",
			"provider", desc.name, "from", from.String(), "to", to.String())
		if m.metrics != nil {
			m.metrics.RecordStateChange(desc.name, from.String(), to.String())
		}
	}
}

// GetServiceStatus snapshots every registered provider by name.
func (m *Manager) GetServiceStatus() map[string]types.ServiceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]types.ServiceSnapshot, len(m.services))
	for name, desc := range m.services {
		out[name] = desc.snapshot()
	}
	return out
}

// GetStatistics snapshots the whole lookup subsystem: request counters,
// per-provider call totals and the cache tiers.
func (m *Manager) GetStatistics() types.Statistics {
	stats := types.Statistics{
		Timestamp:       time.Now(),
		TotalRequests:   m.totalRequests.Load(),
		CacheHits:       m.cacheHits.Load(),
		ServiceCalls:    make(map[string]int64),
		ServiceFailures: make(map[string]int64),
		Cache:           m.cache.Stats(),
	}

	if stats.TotalRequests > 0 {
		stats.CacheHitRate = float64(stats.CacheHits) / float64(stats.TotalRequests)
	}
	if n := m.lastCleanupNano.Load(); n > 0 {
		stats.LastCleanup = time.Unix(0, n)
	}

	for _, desc := range m.orderedDescriptors() {
		snap := desc.snapshot()
		stats.Services = append(stats.Services, snap)
		stats.ServiceCalls[snap.Name] = snap.TotalCalls
		stats.ServiceFailures[snap.Name] = snap.TotalCalls - snap.SuccessfulCalls
	}

	return stats
}

// DisableService takes a provider out of routing.
func (m *Manager) DisableService(name string) error {
	desc, err := m.descriptor(name)
	if err != nil {
		return err
	}

	desc.disable()
	m.logger.Info("Provider disabled", "name", name)
	return nil
}

// EnableService returns a provider to routing, clearing its failure
// count and any authentication lock.
func (m *Manager) EnableService(name string) error {
	desc, err := m.descriptor(name)
	if err != nil {
		return err
	}

	desc.enable()
	m.logger.Info("Provider enabled", "name", name)
	return nil
}

func (m *Manager) descriptor(name string) (*ServiceDescriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	desc, ok := m.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownService, name)
	}
	return desc, nil
}

// CleanupCache removes expired entries from both cache tiers.
func (m *Manager) CleanupCache(ctx context.Context) (types.CleanupResult, error) {
	result, err := m.cache.CleanupExpired(ctx)
	if err == nil {
		m.lastCleanupNano.Store(time.Now().UnixNano())
	}
	return result, err
}

// ClearCache empties both cache tiers.
func (m *Manager) ClearCache(ctx context.Context) error {
	return m.cache.ClearAll(ctx)
}

// Close shuts the manager down and closes the cache it owns. Safe to
// call more than once.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.logger.Info("Closing lookup manager")
	return m.cache.Close()
}
