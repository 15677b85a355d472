package wordbook

import (
	"github.com/LavishGent/wordbook/internal/app"
	"github.com/LavishGent/wordbook/internal/metrics"
	"github.com/LavishGent/wordbook/internal/types"
)

type (
	// WordRecord bundles everything known about one word.
	WordRecord = types.WordRecord
	// ServicePriority orders providers in the lookup chain.
	ServicePriority = types.ServicePriority
	// ServiceStatus is the health state of a registered provider.
	ServiceStatus = types.ServiceStatus
	// ServiceSnapshot is a point-in-time view of one registered provider.
	ServiceSnapshot = types.ServiceSnapshot
	// Statistics is a point-in-time view of the whole lookup subsystem.
	Statistics = types.Statistics
	// CacheStats combines per-tier cache statistics.
	CacheStats = types.CacheStats
	// MemoryTierStats describes the memory cache tier.
	MemoryTierStats = types.MemoryTierStats
	// PersistentTierStats describes the persistent cache tier.
	PersistentTierStats = types.PersistentTierStats
	// CleanupResult reports how many expired entries a cleanup pass removed.
	CleanupResult = types.CleanupResult
	// Provider is the contract a dictionary lookup service implements.
	Provider = types.Provider
	// BatchProvider is an optional capability for providers that can
	// resolve many words in one call.
	BatchProvider = types.BatchProvider
	// MetricsRecorder receives cache and provider measurements.
	MetricsRecorder = types.MetricsRecorder
	// SecretString holds a credential that redacts itself when printed.
	SecretString = types.SecretString
	// MetricsSnapshot is a point-in-time view of the collected metrics.
	MetricsSnapshot = metrics.Snapshot
	// ProcessingResult summarizes one file processing run.
	ProcessingResult = app.ProcessingResult
)

const (
	// PriorityPrimary providers are tried first.
	PriorityPrimary = types.PriorityPrimary
	// PrioritySecondary providers are tried after primary providers fail.
	PrioritySecondary = types.PrioritySecondary
	// PriorityFallback providers are the last resort.
	PriorityFallback = types.PriorityFallback
)

const (
	// StatusActive marks a provider routing normally.
	StatusActive = types.StatusActive
	// StatusDegraded marks a provider with recent failures.
	StatusDegraded = types.StatusDegraded
	// StatusFailed marks a provider excluded from routing until its
	// recovery window elapses.
	StatusFailed = types.StatusFailed
	// StatusDisabled marks a provider turned off by hand.
	StatusDisabled = types.StatusDisabled
)

// NewWordRecord creates a WordRecord for word with nothing resolved yet.
func NewWordRecord(word string) WordRecord {
	return types.NewWordRecord(word)
}

// NewSecretString wraps a credential for use in configuration.
func NewSecretString(value string) SecretString {
	return types.NewSecretString(value)
}

// NormalizeWord lowercases and trims a word the way cache keys and batch
// results are keyed.
func NormalizeWord(word string) string {
	return types.NormalizeWord(word)
}
