// Package types provides shared types for the wordbook lookup library.
// This package breaks import cycles between pkg/wordbook and the internal
// cache and lookup packages.
package types

import (
	"strings"
	"time"
)

type QueryKind int

const (
	KindDefinition QueryKind = iota + 1
	KindPronunciation
)

func (k QueryKind) String() string {
	switch k {
	case KindDefinition:
		return "definition"
	case KindPronunciation:
		return "pronunciation"
	default:
		return "unknown"
	}
}

type ServicePriority int

// Lower values are tried first. The numeric values are part of the
// routing contract: Primary=1, Secondary=2, Fallback=3.
const (
	PriorityPrimary ServicePriority = iota + 1
	PrioritySecondary
	PriorityFallback
)

func (p ServicePriority) String() string {
	switch p {
	case PriorityPrimary:
		return "primary"
	case PrioritySecondary:
		return "secondary"
	case PriorityFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

type ServiceStatus int

const (
	StatusActive ServiceStatus = iota + 1
	StatusDegraded
	StatusFailed
	StatusDisabled
)

func (s ServiceStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// CacheEntry is a timestamped value with an optional expiry. Entries are
// immutable once created; an update replaces the entry wholesale.
type CacheEntry struct {
	Value     string        `json:"value"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl,omitempty"`
}

// NewCacheEntry creates an entry stamped with the current time.
// A zero ttl means the entry never expires.
func NewCacheEntry(value string, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Value:     value,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
}

// IsExpired reports whether the entry's TTL has elapsed. Entries without
// a TTL never expire.
func (e CacheEntry) IsExpired() bool {
	if e.TTL <= 0 {
		return false
	}
	return time.Since(e.CreatedAt) > e.TTL
}

// Age returns the time elapsed since the entry was created.
func (e CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// WordRecord is the result of looking up a single word. Word is always
// stored normalized. FoundDefinition and FoundPronunciation are false
// exactly when the corresponding field is empty because no provider
// supplied a value.
type WordRecord struct {
	Word               string `json:"word"`
	Definition         string `json:"definition"`
	Pronunciation      string `json:"pronunciation"`
	FoundDefinition    bool   `json:"found_definition"`
	FoundPronunciation bool   `json:"found_pronunciation"`
}

// NewWordRecord creates an empty record for a word, normalizing it first.
func NewWordRecord(word string) WordRecord {
	return WordRecord{Word: NormalizeWord(word)}
}

// Complete reports whether both a definition and a pronunciation were found.
func (r WordRecord) Complete() bool {
	return r.FoundDefinition && r.FoundPronunciation
}

// NormalizeWord lower-cases and trims a word. This is the canonical form
// used for cache keys and WordRecord.Word; heavier filtering (stop words,
// structural heuristics) belongs to the normalize package.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// MemoryTierStats describes the memory tier at a point in time. Expired
// counts entries whose TTL has elapsed but which have not been evicted yet.
type MemoryTierStats struct {
	Total      int     `json:"total"`
	Expired    int     `json:"expired"`
	Active     int     `json:"active"`
	MaxSize    int     `json:"max_size"`
	UsageRatio float64 `json:"usage_ratio"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Sets       int64   `json:"sets"`
	Deletes    int64   `json:"deletes"`
	Evictions  int64   `json:"evictions"`
}

// PersistentTierStats describes the persistent tier at a point in time.
type PersistentTierStats struct {
	Total     int    `json:"total"`
	Expired   int    `json:"expired"`
	Active    int    `json:"active"`
	Backend   string `json:"backend"`
	Available bool   `json:"available"`
}

// CacheStats combines per-tier statistics.
type CacheStats struct {
	Memory     MemoryTierStats     `json:"memory"`
	Persistent PersistentTierStats `json:"persistent"`
}

// CleanupResult reports how many expired entries a cleanup pass removed
// from each tier.
type CleanupResult struct {
	MemoryCleaned     int `json:"memory_cleaned"`
	PersistentCleaned int `json:"persistent_cleaned"`
	TotalCleaned      int `json:"total_cleaned"`
}
