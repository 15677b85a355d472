package wordbook

import (
	"github.com/LavishGent/wordbook/internal/config"
)

// New creates a client with default configuration.
func New(opts ...ManagerOption) (*Client, error) {
	return NewFromConfig(config.DefaultConfig(), opts...)
}

// NewFromConfig creates a client from configuration.
func NewFromConfig(cfg *config.Config, opts ...ManagerOption) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	managerOpts := &ManagerOptions{}
	for _, opt := range opts {
		opt(managerOpts)
	}
	return newClient(cfg, managerOpts)
}

// NewFromFile creates a client from a JSON config file, with environment
// variable overrides applied on top.
func NewFromFile(path string, opts ...ManagerOption) (*Client, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewMemoryOnly creates a client whose cache runs without a persistent tier.
func NewMemoryOnly(opts ...ManagerOption) (*Client, error) {
	cfg := config.DefaultConfig()
	cfg.Persistent.Backend = "none"
	return NewFromConfig(cfg, opts...)
}

// Config returns a default configuration that can be modified before creating a client.
func Config() *config.Config {
	return config.DefaultConfig()
}

// TestConfig returns a configuration suitable for unit tests.
func TestConfig() *config.Config {
	return config.ForTesting()
}
