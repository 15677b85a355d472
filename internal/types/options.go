package types

import "log/slog"

// ManagerOptions holds construction-time overrides for the lookup client.
// Zero values defer to the configuration.
type ManagerOptions struct {
	// Logger is the structured logger for all subsystems.
	Logger *slog.Logger

	// Metrics overrides the recorder built from the metrics config. When
	// set, the caller owns its lifecycle and no background publisher is
	// started.
	Metrics MetricsRecorder

	// CachePath overrides the persistent cache file path from config.
	CachePath string

	// RedisAddress overrides the Redis address from config and selects
	// the redis persistent backend.
	RedisAddress string

	// RedisPassword overrides the Redis password from config.
	// Uses SecretString to prevent accidental logging of sensitive values.
	RedisPassword SecretString

	// RedisDB overrides the Redis database from config.
	RedisDB int

	// DisablePersistence runs the cache memory-only.
	DisablePersistence bool

	// DisableRetries turns off per-provider retry of transient failures.
	DisableRetries bool

	// SkipDefaultProviders leaves provider registration entirely to the
	// caller.
	SkipDefaultProviders bool
}
