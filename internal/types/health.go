package types

import "time"

// ServiceSnapshot is a point-in-time view of one registered provider,
// taken under the descriptor's lock and safe to hold indefinitely.
type ServiceSnapshot struct {
	Name            string          `json:"name"`
	Priority        ServicePriority `json:"priority"`
	Status          ServiceStatus   `json:"status"`
	FailureCount    int             `json:"failure_count"`
	TotalCalls      int64           `json:"total_calls"`
	SuccessfulCalls int64           `json:"successful_calls"`
	SuccessRate     float64         `json:"success_rate"`
	LastFailureAt   time.Time       `json:"last_failure_at"`
	LastSuccessAt   time.Time       `json:"last_success_at"`
}

// Statistics is a point-in-time view of the whole lookup subsystem.
type Statistics struct {
	Timestamp       time.Time         `json:"timestamp"`
	TotalRequests   int64             `json:"total_requests"`
	CacheHits       int64             `json:"cache_hits"`
	CacheHitRate    float64           `json:"cache_hit_rate"`
	ServiceCalls    map[string]int64  `json:"service_calls"`
	ServiceFailures map[string]int64  `json:"service_failures"`
	Services        []ServiceSnapshot `json:"services"`
	Cache           CacheStats        `json:"cache"`
	LastCleanup     time.Time         `json:"last_cleanup"`
}

// ProviderFailureRate returns the fraction of calls to one provider that
// failed, or 0 when it has not been called.
func (s *Statistics) ProviderFailureRate(name string) float64 {
	calls := s.ServiceCalls[name]
	if calls == 0 {
		return 0
	}
	return float64(s.ServiceFailures[name]) / float64(calls)
}

// MemoryHitRatio calculates the memory tier hit ratio.
func (s *Statistics) MemoryHitRatio() float64 {
	total := s.Cache.Memory.Hits + s.Cache.Memory.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Cache.Memory.Hits) / float64(total)
}
