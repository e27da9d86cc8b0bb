// Package config loads server configuration from environment variables.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/deckfall/run-api/internal/errors"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"RUN_API_PORT" envDefault:"8080"`

	// RedisAddress is the host:port of the save store.
	RedisAddress string `env:"RUN_API_REDIS_ADDRESS" envDefault:"localhost:6379"`

	// RedisPassword is optional.
	RedisPassword string `env:"RUN_API_REDIS_PASSWORD"`

	// RedisDB selects the redis logical database.
	RedisDB int `env:"RUN_API_REDIS_DB" envDefault:"0"`

	// AuthSecret is the HMAC key for bearer tokens. Required.
	AuthSecret string `env:"RUN_API_AUTH_SECRET"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `env:"RUN_API_SHUTDOWN_TIMEOUT_SECONDS" envDefault:"30"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Port <= 0 || c.Port > 65535 {
		vb.InvalidField("Port", "must be a valid port number")
	}
	if c.RedisAddress == "" {
		vb.RequiredField("RedisAddress")
	}
	if c.AuthSecret == "" {
		vb.RequiredField("AuthSecret")
	}

	return vb.Build()
}
