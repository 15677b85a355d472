package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Load loads configuration from a JSON file.
// If the file doesn't exist, returns default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnv loads configuration from a JSON file and applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	ApplyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides folds WORDBOOK_* and DD_* environment variables into
// an already loaded configuration. Values that fail to parse keep the
// configured value.
//
//nolint:gocyclo // Environment variable parsing requires many conditional checks
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORDBOOK_MEMORY_MAX_SIZE"); v != "" {
		cfg.Memory.MaxSize = parseInt(v, cfg.Memory.MaxSize)
	}
	if v := os.Getenv("WORDBOOK_MEMORY_TTL"); v != "" {
		cfg.Memory.DefaultTTL = parseDuration(v, cfg.Memory.DefaultTTL)
	}
	if v := os.Getenv("WORDBOOK_MEMORY_CLEANUP_INTERVAL"); v != "" {
		cfg.Memory.CleanupInterval = parseDuration(v, cfg.Memory.CleanupInterval)
	}

	if v := os.Getenv("WORDBOOK_PERSISTENT_BACKEND"); v != "" {
		cfg.Persistent.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("WORDBOOK_PERSISTENT_PATH"); v != "" {
		cfg.Persistent.Path = v
	}
	if v := os.Getenv("WORDBOOK_PERSISTENT_TTL"); v != "" {
		cfg.Persistent.DefaultTTL = parseDuration(v, cfg.Persistent.DefaultTTL)
	}

	if v := os.Getenv("WORDBOOK_REDIS_ADDRESS"); v != "" {
		cfg.Redis.Address = v
	}
	if v := os.Getenv("WORDBOOK_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = NewSecretString(v)
	}
	if v := os.Getenv("WORDBOOK_REDIS_DB"); v != "" {
		cfg.Redis.DB = parseInt(v, cfg.Redis.DB)
	}
	if v := os.Getenv("WORDBOOK_REDIS_KEY_PREFIX"); v != "" {
		cfg.Redis.KeyPrefix = v
	}
	if v := os.Getenv("WORDBOOK_REDIS_ENABLE_TLS"); v != "" {
		cfg.Redis.EnableTLS = parseBool(v)
	}

	if v := os.Getenv("WORDBOOK_LOOKUP_TIMEOUT"); v != "" {
		cfg.Lookup.Timeout = parseDuration(v, cfg.Lookup.Timeout)
	}
	if v := os.Getenv("WORDBOOK_LOOKUP_MAX_RETRIES"); v != "" {
		cfg.Lookup.MaxRetries = parseInt(v, cfg.Lookup.MaxRetries)
	}
	if v := os.Getenv("WORDBOOK_LOOKUP_RETRY_DELAY"); v != "" {
		cfg.Lookup.RetryDelay = parseDuration(v, cfg.Lookup.RetryDelay)
	}
	if v := os.Getenv("WORDBOOK_LOOKUP_FAILURE_THRESHOLD"); v != "" {
		cfg.Lookup.FailureThreshold = parseInt(v, cfg.Lookup.FailureThreshold)
	}
	if v := os.Getenv("WORDBOOK_LOOKUP_RECOVERY_WINDOW"); v != "" {
		cfg.Lookup.RecoveryWindow = parseDuration(v, cfg.Lookup.RecoveryWindow)
	}
	if v := os.Getenv("WORDBOOK_LOOKUP_BATCH_WORKERS"); v != "" {
		cfg.Lookup.BatchWorkers = parseInt(v, cfg.Lookup.BatchWorkers)
	}

	if v := os.Getenv("WORDBOOK_EASYPRON_ENABLED"); v != "" {
		cfg.Providers.EasyPronunciation.Enabled = parseBool(v)
	}
	if v := os.Getenv("WORDBOOK_EASYPRON_API_KEY"); v != "" {
		cfg.Providers.EasyPronunciation.APIKey = NewSecretString(v)
		cfg.Providers.EasyPronunciation.Enabled = true
	}
	if v := os.Getenv("WORDBOOK_EASYPRON_BASE_URL"); v != "" {
		cfg.Providers.EasyPronunciation.BaseURL = v
	}
	if v := os.Getenv("WORDBOOK_FREEDICT_ENABLED"); v != "" {
		cfg.Providers.FreeDictionary.Enabled = parseBool(v)
	}
	if v := os.Getenv("WORDBOOK_FREEDICT_BASE_URL"); v != "" {
		cfg.Providers.FreeDictionary.BaseURL = v
	}
	if v := os.Getenv("WORDBOOK_LOCAL_ENABLED"); v != "" {
		cfg.Providers.Local.Enabled = parseBool(v)
	}
	if v := os.Getenv("WORDBOOK_LOCAL_DICTIONARY"); v != "" {
		cfg.Providers.Local.Path = v
	}

	if v := os.Getenv("WORDBOOK_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}

	if v := os.Getenv("DD_AGENT_HOST"); v != "" {
		cfg.Metrics.DataDog.AgentHost = v
		cfg.Metrics.DataDog.Enabled = true
	}
	if v := os.Getenv("DD_DOGSTATSD_PORT"); v != "" {
		cfg.Metrics.DataDog.Port = parseInt(v, cfg.Metrics.DataDog.Port)
	}
	if v := os.Getenv("DD_SERVICE"); v != "" {
		cfg.Metrics.DataDog.Prefix = v
	}
	if v := os.Getenv("DD_ENV"); v != "" {
		cfg.Metrics.DataDog.Tags = append(cfg.Metrics.DataDog.Tags, "env:"+v)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Memory.MaxSize <= 0 {
		return fmt.Errorf("memory.maxSize must be positive")
	}

	switch c.Persistent.Backend {
	case "file":
		if c.Persistent.Path == "" {
			return fmt.Errorf("persistent.path is required for the file backend")
		}
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis backend")
		}
		if c.Redis.PoolSize <= 0 {
			return fmt.Errorf("redis.poolSize must be positive")
		}
	case "none", "":
	default:
		return fmt.Errorf("persistent.backend must be one of file, redis, none")
	}

	if c.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup.timeout must be positive")
	}
	if c.Lookup.MaxRetries < 0 {
		return fmt.Errorf("lookup.maxRetries cannot be negative")
	}
	if c.Lookup.FailureThreshold <= 0 {
		return fmt.Errorf("lookup.failureThreshold must be positive")
	}
	if c.Lookup.RecoveryWindow <= 0 {
		return fmt.Errorf("lookup.recoveryWindow must be positive")
	}
	if c.Lookup.BatchWorkers <= 0 {
		return fmt.Errorf("lookup.batchWorkers must be positive")
	}

	if c.Providers.EasyPronunciation.Enabled && c.Providers.EasyPronunciation.BaseURL == "" {
		return fmt.Errorf("providers.easyPronunciation.baseURL is required when enabled")
	}
	if c.Providers.FreeDictionary.Enabled && c.Providers.FreeDictionary.BaseURL == "" {
		return fmt.Errorf("providers.freeDictionary.baseURL is required when enabled")
	}

	if c.Processing.MaxFileSizeMB <= 0 {
		return fmt.Errorf("processing.maxFileSizeMB must be positive")
	}
	if c.Processing.MinWordLength <= 0 || c.Processing.MaxWordLength < c.Processing.MinWordLength {
		return fmt.Errorf("processing word length bounds are inconsistent")
	}

	return nil
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func parseInt(s string, defaultVal int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return v
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultVal
}
