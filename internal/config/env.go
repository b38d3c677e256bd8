package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/owayo/claw-hooks/internal/types"
)

// Env holds environment-variable overrides. They take precedence over
// both the config file and CLI flags, which lets a user adjust an agent
// hook's behavior without editing the agent's hook registration.
type Env struct {
	// Config overrides the config file path (CLAW_HOOKS_CONFIG).
	Config string `envconfig:"CONFIG"`

	// LogLevel overrides log.level (CLAW_HOOKS_LOG_LEVEL).
	LogLevel string `envconfig:"LOG_LEVEL"`

	// NoColor disables colored stderr output (CLAW_HOOKS_NO_COLOR).
	NoColor bool `envconfig:"NO_COLOR"`

	// Disable is the kill switch (CLAW_HOOKS_DISABLE): the filter chain
	// is built empty and every well-formed event is allowed. Boundary
	// parse failures still fail closed.
	Disable bool `envconfig:"DISABLE"`
}

// LoadEnv reads overrides from CLAW_HOOKS_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("CLAW_HOOKS", &e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply merges the env overrides into a loaded config.
func (e Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.Log.Level = types.LogLevel(e.LogLevel)
	}
	if e.NoColor {
		cfg.Log.NoColor = true
	}
}
