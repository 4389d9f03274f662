package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide observability configuration. It is read from
// the environment exactly once at startup and never re-read; a subsystem
// whose key is absent stays disabled for the process lifetime.
type Config struct {
	// Analytics backend. The client is only constructed when WriteKey is set.
	AnalyticsWriteKey string `env:"OBS_ANALYTICS_WRITE_KEY"`
	AnalyticsEndpoint string `env:"OBS_ANALYTICS_ENDPOINT" envDefault:"http://localhost:8080/v1/events"`

	// Error reporting backend. Empty DSN disables error capture entirely.
	ErrorReportingDSN string `env:"OBS_ERROR_DSN"`

	// Auth provider. Both values are required for the auth subsystem.
	AuthURL string `env:"OBS_AUTH_URL"`
	AuthKey string `env:"OBS_AUTH_KEY"`

	// Runtime selects the error reporter initialization path: "server" or "edge".
	Runtime string `env:"OBS_RUNTIME" envDefault:"server"`

	// App names the application in outbound events.
	App string `env:"OBS_APP" envDefault:"web"`
}

// FromEnv parses the configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Gates answers whether each subsystem is enabled. Answers are pure
// functions of the parsed Config snapshot: calling them has no side
// effects, is safe before any subsystem initializes, and returns the same
// answer for the process lifetime. Missing configuration is a normal
// state, never an error.
type Gates struct {
	cfg Config
}

// NewGates derives the subsystem gates from a parsed Config.
func NewGates(cfg Config) Gates {
	return Gates{cfg: cfg}
}

// AnalyticsEnabled reports whether the analytics subsystem is configured.
func (g Gates) AnalyticsEnabled() bool {
	return g.cfg.AnalyticsWriteKey != ""
}

// ErrorReportingEnabled reports whether error capture is configured.
func (g Gates) ErrorReportingEnabled() bool {
	return g.cfg.ErrorReportingDSN != ""
}

// AuthEnabled reports whether the auth provider is configured. Both the
// backend URL and key are required.
func (g Gates) AuthEnabled() bool {
	return g.cfg.AuthURL != "" && g.cfg.AuthKey != ""
}
