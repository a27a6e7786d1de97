package apikit

import (
	"time"

	"github.com/dmitrymomot/apikit/pkg/config"
	"github.com/dmitrymomot/apikit/pkg/logger"
)

// Config is the client configuration surface. Fields carry env tags so a
// client can be constructed straight from the environment via NewFromEnv.
type Config struct {
	// Host is the backend base URL, e.g. "https://api.example.com".
	// Required unless Mock is set.
	Host string `env:"API_HOST"`
	// Mock switches the client to mock dispatch: no transport calls are
	// made and endpoints resolve their configured mock responses.
	Mock bool `env:"API_MOCK" envDefault:"false"`
	// RequestTimeout bounds each transport round-trip.
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"30s"`
	// UserAgent overrides the User-Agent header on outgoing requests.
	UserAgent string `env:"API_USER_AGENT"`
	// Environment selects logging defaults ("development" or "production").
	Environment string `env:"API_ENV" envDefault:"development"`
}

// NewFromEnv constructs a client from environment configuration, with a
// logger matching the configured environment. Explicit options are applied
// after the environment-derived ones, so they win on conflict.
func NewFromEnv(opts ...Option) (*Client, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	log := logger.New(logger.WithEnvironment(cfg.Environment, "apikit"))
	return New(cfg, append([]Option{WithLogger(log)}, opts...)...)
}
