package wordbook

import (
	"log/slog"

	"github.com/LavishGent/wordbook/internal/types"
)

// ManagerOptions holds construction-time overrides collected from options.
type ManagerOptions = types.ManagerOptions

type ManagerOption func(*ManagerOptions)

func WithLogger(logger *slog.Logger) ManagerOption {
	return func(o *ManagerOptions) {
		o.Logger = logger
	}
}

func WithMetrics(metrics MetricsRecorder) ManagerOption {
	return func(o *ManagerOptions) {
		o.Metrics = metrics
	}
}

func WithCachePath(path string) ManagerOption {
	return func(o *ManagerOptions) {
		o.CachePath = path
	}
}

// WithRedisAddress selects the redis persistent backend at addr.
func WithRedisAddress(addr string) ManagerOption {
	return func(o *ManagerOptions) {
		o.RedisAddress = addr
	}
}

func WithRedisPassword(password string) ManagerOption {
	return func(o *ManagerOptions) {
		o.RedisPassword = types.NewSecretString(password)
	}
}

func WithRedisDB(db int) ManagerOption {
	return func(o *ManagerOptions) {
		o.RedisDB = db
	}
}

func WithoutPersistence() ManagerOption {
	return func(o *ManagerOptions) {
		o.DisablePersistence = true
	}
}

func WithoutRetries() ManagerOption {
	return func(o *ManagerOptions) {
		o.DisableRetries = true
	}
}

// WithoutDefaultProviders skips registration of the configured provider
// set, leaving the chain to RegisterProvider calls.
func WithoutDefaultProviders() ManagerOption {
	return func(o *ManagerOptions) {
		o.SkipDefaultProviders = true
	}
}
