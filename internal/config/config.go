// Package config provides configuration management for wordbook.
package config

import (
	"time"

	"github.com/LavishGent/wordbook/internal/types"
)

// SecretString is a string type that redacts its value when marshaled to JSON.
type SecretString = types.SecretString

// NewSecretString creates a new SecretString with the provided value.
func NewSecretString(value string) SecretString {
	return types.NewSecretString(value)
}

// Config contains all configuration for the wordbook lookup subsystem and
// the surrounding extraction pipeline.
//
//nolint:govet // Configuration struct - logical grouping prioritized over alignment
type Config struct {
	Memory     MemoryConfig     `json:"memory"`
	Persistent PersistentConfig `json:"persistent"`
	Redis      RedisConfig      `json:"redis"`
	Lookup     LookupConfig     `json:"lookup"`
	Providers  ProvidersConfig  `json:"providers"`
	Processing ProcessingConfig `json:"processing"`
	Report     ReportConfig     `json:"report"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// MemoryConfig contains configuration for the memory cache tier. MaxSize
// counts entries, not bytes; the tier evicts the least recently used entry
// when full.
type MemoryConfig struct {
	MaxSize         int           `json:"maxSize"`
	DefaultTTL      time.Duration `json:"defaultTTL"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
}

// PersistentConfig contains configuration for the persistent cache tier.
// Backend selects the durable store: "file" (default), "redis", or "none"
// for a memory-only cache.
type PersistentConfig struct {
	Backend    string        `json:"backend"`
	Path       string        `json:"path"`
	DefaultTTL time.Duration `json:"defaultTTL"`
}

// RedisConfig contains connection settings for the Redis persistent
// backend. Only consulted when Persistent.Backend is "redis".
//
//nolint:govet // Configuration struct - logical grouping prioritized over alignment
type RedisConfig struct {
	Address      string        `json:"address"`
	Password     SecretString  `json:"password"`
	DB           int           `json:"db"`
	KeyPrefix    string        `json:"keyPrefix"`
	PoolSize     int           `json:"poolSize"`
	DialTimeout  time.Duration `json:"dialTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout"`
	EnableTLS    bool          `json:"enableTLS"`
}

// LookupConfig contains routing and health parameters for the lookup
// manager.
type LookupConfig struct {
	// Timeout bounds each provider call attempt.
	Timeout time.Duration `json:"timeout"`
	// MaxRetries is the number of additional attempts for transient
	// failures. Authentication and rate-limit errors are never retried.
	MaxRetries int `json:"maxRetries"`
	// RetryDelay is the base backoff; attempt n waits n times this value.
	RetryDelay time.Duration `json:"retryDelay"`
	// FailureThreshold is the consecutive failure count at which a
	// provider is marked failed. Half of it marks the provider degraded.
	FailureThreshold int `json:"failureThreshold"`
	// RecoveryWindow is how long a failed provider is excluded from
	// routing before an optimistic probe.
	RecoveryWindow time.Duration `json:"recoveryWindow"`
	// BatchWorkers bounds concurrent per-word lookups during a batch.
	BatchWorkers int `json:"batchWorkers"`
}

// ProvidersConfig enables and configures the bundled lookup providers.
type ProvidersConfig struct {
	EasyPronunciation EasyPronunciationConfig `json:"easyPronunciation"`
	FreeDictionary    FreeDictionaryConfig    `json:"freeDictionary"`
	Local             LocalConfig             `json:"local"`
}

// EasyPronunciationConfig configures the EasyPronunciation API client.
type EasyPronunciationConfig struct {
	Enabled        bool          `json:"enabled"`
	BaseURL        string        `json:"baseURL"`
	APIKey         SecretString  `json:"apiKey"`
	Language       string        `json:"language"`
	RequestsPerSec float64       `json:"requestsPerSec"`
	Timeout        time.Duration `json:"timeout"`
}

// FreeDictionaryConfig configures the Free Dictionary API client.
type FreeDictionaryConfig struct {
	Enabled        bool          `json:"enabled"`
	BaseURL        string        `json:"baseURL"`
	RequestsPerSec float64       `json:"requestsPerSec"`
	Timeout        time.Duration `json:"timeout"`
}

// LocalConfig configures the built-in offline dictionary. Path points to
// an optional JSON file merged over the seed entries.
type LocalConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// ProcessingConfig contains word extraction and normalization settings
// for the pipeline.
type ProcessingConfig struct {
	MaxFileSizeMB    int  `json:"maxFileSizeMB"`
	StrictTokens     bool `json:"strictTokens"`
	IncludeStopWords bool `json:"includeStopWords"`
	MinWordLength    int  `json:"minWordLength"`
	MaxWordLength    int  `json:"maxWordLength"`
}

// ReportConfig contains vocabulary report rendering settings.
type ReportConfig struct {
	Orientation string `json:"orientation"`
	PageSize    string `json:"pageSize"`
}

// MetricsConfig contains configuration for metrics publishing.
//
//nolint:govet // Small config struct - minimal alignment benefit
type MetricsConfig struct {
	PublishInterval time.Duration `json:"publishInterval"`
	DataDog         DataDogConfig `json:"datadog"`
	Enabled         bool          `json:"enabled"`
}

// DataDogConfig contains configuration for DataDog metrics publishing.
//
//nolint:govet // Small config struct - minimal alignment benefit
type DataDogConfig struct {
	Tags      []string `json:"tags"`
	AgentHost string   `json:"agentHost"`
	Prefix    string   `json:"prefix"`
	Port      int      `json:"port"`
	Enabled   bool     `json:"enabled"`
}
