package config

import "time"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Memory: MemoryConfig{
			MaxSize:         5000,
			DefaultTTL:      1 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Persistent: PersistentConfig{
			Backend:    "file",
			Path:       ".cache/wordbook_cache.json",
			DefaultTTL: 7 * 24 * time.Hour,
		},
		Redis: RedisConfig{
			Address:      "localhost:6379",
			Password:     SecretString{},
			DB:           0,
			KeyPrefix:    "wordbook:",
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			EnableTLS:    false,
		},
		Lookup: LookupConfig{
			Timeout:          10 * time.Second,
			MaxRetries:       3,
			RetryDelay:       1 * time.Second,
			FailureThreshold: 5,
			RecoveryWindow:   5 * time.Minute,
			BatchWorkers:     5,
		},
		Providers: ProvidersConfig{
			EasyPronunciation: EasyPronunciationConfig{
				Enabled:        false,
				BaseURL:        "https://api.easypronunciation.com/v1",
				Language:       "zh-CN",
				RequestsPerSec: 5,
				Timeout:        10 * time.Second,
			},
			FreeDictionary: FreeDictionaryConfig{
				Enabled:        true,
				BaseURL:        "https://api.dictionaryapi.dev/api/v2/entries/en",
				RequestsPerSec: 2,
				Timeout:        10 * time.Second,
			},
			Local: LocalConfig{
				Enabled: true,
			},
		},
		Processing: ProcessingConfig{
			MaxFileSizeMB:    50,
			StrictTokens:     false,
			IncludeStopWords: false,
			MinWordLength:    1,
			MaxWordLength:    50,
		},
		Report: ReportConfig{
			Orientation: "P",
			PageSize:    "A4",
		},
		Metrics: MetricsConfig{
			Enabled:         true,
			PublishInterval: 30 * time.Second,
			DataDog: DataDogConfig{
				Enabled:   false,
				AgentHost: "127.0.0.1",
				Port:      8125,
				Prefix:    "wordbook",
				Tags:      []string{},
			},
		},
	}
}

// ForTesting returns a minimal configuration suitable for unit tests.
// Providers and metrics are disabled and the cache runs memory-only.
func ForTesting() *Config {
	return &Config{
		Memory: MemoryConfig{
			MaxSize:         100,
			DefaultTTL:      1 * time.Minute,
			CleanupInterval: 0,
		},
		Persistent: PersistentConfig{
			Backend:    "none",
			DefaultTTL: 1 * time.Hour,
		},
		Lookup: LookupConfig{
			Timeout:          1 * time.Second,
			MaxRetries:       0,
			RetryDelay:       1 * time.Millisecond,
			FailureThreshold: 3,
			RecoveryWindow:   1 * time.Second,
			BatchWorkers:     2,
		},
		Processing: ProcessingConfig{
			MaxFileSizeMB: 1,
			MinWordLength: 1,
			MaxWordLength: 50,
		},
		Report: ReportConfig{
			Orientation: "P",
			PageSize:    "A4",
		},
		Metrics: MetricsConfig{
			Enabled:         false,
			PublishInterval: 1 * time.Second,
		},
	}
}

// ForTestingWithFile returns a test config persisting to the given path.
func ForTestingWithFile(path string) *Config {
	cfg := ForTesting()
	cfg.Persistent.Backend = "file"
	cfg.Persistent.Path = path
	return cfg
}
