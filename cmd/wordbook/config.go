package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/LavishGent/wordbook/internal/config"
)

// loadConfig resolves the effective configuration: library defaults,
// then the config file (--config, or config.{yaml,json} searched in .
// and ~/.config/wordbook), then WORDBOOK_* environment variables on top.
func loadConfig() (*config.Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordbook")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := config.DefaultConfig()
	applyFileConfig(cfg, v)
	config.ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFileConfig copies every key present in the config file onto the
// configuration. Keys mirror the JSON field names of the config structs,
// so a library config file works here unchanged.
//
//nolint:gocyclo // Config file mapping is one conditional per key
func applyFileConfig(cfg *config.Config, v *viper.Viper) {
	if v.IsSet("memory.maxSize") {
		cfg.Memory.MaxSize = v.GetInt("memory.maxSize")
	}
	if v.IsSet("memory.defaultTTL") {
		cfg.Memory.DefaultTTL = v.GetDuration("memory.defaultTTL")
	}
	if v.IsSet("memory.cleanupInterval") {
		cfg.Memory.CleanupInterval = v.GetDuration("memory.cleanupInterval")
	}

	if v.IsSet("persistent.backend") {
		cfg.Persistent.Backend = v.GetString("persistent.backend")
	}
	if v.IsSet("persistent.path") {
		cfg.Persistent.Path = v.GetString("persistent.path")
	}
	if v.IsSet("persistent.defaultTTL") {
		cfg.Persistent.DefaultTTL = v.GetDuration("persistent.defaultTTL")
	}

	if v.IsSet("redis.address") {
		cfg.Redis.Address = v.GetString("redis.address")
	}
	if v.IsSet("redis.password") {
		cfg.Redis.Password = config.NewSecretString(v.GetString("redis.password"))
	}
	if v.IsSet("redis.db") {
		cfg.Redis.DB = v.GetInt("redis.db")
	}
	if v.IsSet("redis.keyPrefix") {
		cfg.Redis.KeyPrefix = v.GetString("redis.keyPrefix")
	}
	if v.IsSet("redis.poolSize") {
		cfg.Redis.PoolSize = v.GetInt("redis.poolSize")
	}
	if v.IsSet("redis.enableTLS") {
		cfg.Redis.EnableTLS = v.GetBool("redis.enableTLS")
	}

	if v.IsSet("lookup.timeout") {
		cfg.Lookup.Timeout = v.GetDuration("lookup.timeout")
	}
	if v.IsSet("lookup.maxRetries") {
		cfg.Lookup.MaxRetries = v.GetInt("lookup.maxRetries")
	}
	if v.IsSet("lookup.retryDelay") {
		cfg.Lookup.RetryDelay = v.GetDuration("lookup.retryDelay")
	}
	if v.IsSet("lookup.failureThreshold") {
		cfg.Lookup.FailureThreshold = v.GetInt("lookup.failureThreshold")
	}
	if v.IsSet("lookup.recoveryWindow") {
		cfg.Lookup.RecoveryWindow = v.GetDuration("lookup.recoveryWindow")
	}
	if v.IsSet("lookup.batchWorkers") {
		cfg.Lookup.BatchWorkers = v.GetInt("lookup.batchWorkers")
	}

	if v.IsSet("providers.easyPronunciation.enabled") {
		cfg.Providers.EasyPronunciation.Enabled = v.GetBool("providers.easyPronunciation.enabled")
	}
	if v.IsSet("providers.easyPronunciation.baseURL") {
		cfg.Providers.EasyPronunciation.BaseURL = v.GetString("providers.easyPronunciation.baseURL")
	}
	if v.IsSet("providers.easyPronunciation.apiKey") {
		cfg.Providers.EasyPronunciation.APIKey = config.NewSecretString(v.GetString("providers.easyPronunciation.apiKey"))
	}
	if v.IsSet("providers.easyPronunciation.language") {
		cfg.Providers.EasyPronunciation.Language = v.GetString("providers.easyPronunciation.language")
	}
	if v.IsSet("providers.easyPronunciation.requestsPerSec") {
		cfg.Providers.EasyPronunciation.RequestsPerSec = v.GetFloat64("providers.easyPronunciation.requestsPerSec")
	}
	if v.IsSet("providers.easyPronunciation.timeout") {
		cfg.Providers.EasyPronunciation.Timeout = v.GetDuration("providers.easyPronunciation.timeout")
	}

	if v.IsSet("providers.freeDictionary.enabled") {
		cfg.Providers.FreeDictionary.Enabled = v.GetBool("providers.freeDictionary.enabled")
	}
	if v.IsSet("providers.freeDictionary.baseURL") {
		cfg.Providers.FreeDictionary.BaseURL = v.GetString("providers.freeDictionary.baseURL")
	}
	if v.IsSet("providers.freeDictionary.requestsPerSec") {
		cfg.Providers.FreeDictionary.RequestsPerSec = v.GetFloat64("providers.freeDictionary.requestsPerSec")
	}
	if v.IsSet("providers.freeDictionary.timeout") {
		cfg.Providers.FreeDictionary.Timeout = v.GetDuration("providers.freeDictionary.timeout")
	}

	if v.IsSet("providers.local.enabled") {
		cfg.Providers.Local.Enabled = v.GetBool("providers.local.enabled")
	}
	if v.IsSet("providers.local.path") {
		cfg.Providers.Local.Path = v.GetString("providers.local.path")
	}

	if v.IsSet("processing.maxFileSizeMB") {
		cfg.Processing.MaxFileSizeMB = v.GetInt("processing.maxFileSizeMB")
	}
	if v.IsSet("processing.strictTokens") {
		cfg.Processing.StrictTokens = v.GetBool("processing.strictTokens")
	}
	if v.IsSet("processing.includeStopWords") {
		cfg.Processing.IncludeStopWords = v.GetBool("processing.includeStopWords")
	}
	if v.IsSet("processing.minWordLength") {
		cfg.Processing.MinWordLength = v.GetInt("processing.minWordLength")
	}
	if v.IsSet("processing.maxWordLength") {
		cfg.Processing.MaxWordLength = v.GetInt("processing.maxWordLength")
	}

	if v.IsSet("report.orientation") {
		cfg.Report.Orientation = v.GetString("report.orientation")
	}
	if v.IsSet("report.pageSize") {
		cfg.Report.PageSize = v.GetString("report.pageSize")
	}

	if v.IsSet("metrics.enabled") {
		cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	}
	if v.IsSet("metrics.publishInterval") {
		cfg.Metrics.PublishInterval = v.GetDuration("metrics.publishInterval")
	}
	if v.IsSet("metrics.datadog.enabled") {
		cfg.Metrics.DataDog.Enabled = v.GetBool("metrics.datadog.enabled")
	}
	if v.IsSet("metrics.datadog.agentHost") {
		cfg.Metrics.DataDog.AgentHost = v.GetString("metrics.datadog.agentHost")
	}
	if v.IsSet("metrics.datadog.port") {
		cfg.Metrics.DataDog.Port = v.GetInt("metrics.datadog.port")
	}
	if v.IsSet("metrics.datadog.prefix") {
		cfg.Metrics.DataDog.Prefix = v.GetString("metrics.datadog.prefix")
	}
	if v.IsSet("metrics.datadog.tags") {
		cfg.Metrics.DataDog.Tags = v.GetStringSlice("metrics.datadog.tags")
	}
}
