// Package config loads and validates the claw-hooks configuration.
// Validation happens up front so the filter chain can assume a sane
// config, with one exception: an invalid custom-filter pattern is a
// warning rather than a fatal error, so one bad user entry cannot take
// the whole safety gate offline.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/owayo/claw-hooks/internal/logger"
	"github.com/owayo/claw-hooks/internal/types"
	"gopkg.in/yaml.v3"
)

var cfgLog = logger.New("config")

// Config represents the claw-hooks configuration.
type Config struct {
	Filters        FiltersConfig            `yaml:"filters"`
	CustomFilters  []CustomFilter           `yaml:"custom_filters"`
	ExtensionHooks map[string]ExtensionHook `yaml:"extension_hooks"`
	StopHooks      []StopHook               `yaml:"stop_hooks"`
	Log            LogConfig                `yaml:"log"`
}

// FiltersConfig holds the built-in deny-list filter settings.
type FiltersConfig struct {
	Kill BuiltinFilter `yaml:"kill"`
	Dd   BuiltinFilter `yaml:"dd"`
	Rm   BuiltinFilter `yaml:"rm"`
}

// BuiltinFilter holds one built-in filter's enable flag and optional
// custom block message. An empty message means the built-in default.
type BuiltinFilter struct {
	Enabled bool   `yaml:"enabled"`
	Message string `yaml:"message"`
}

// CustomFilter is one user-defined command filter.
//
// Pattern mode (no args): command is a regex tested against each shell
// segment and each extracted program name, anchored to the start.
// Argument mode (args present): command is a fully anchored regex on the
// segment head, and the first argument must equal one of args exactly.
type CustomFilter struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Message string   `yaml:"message"`
}

// ExtensionHook maps a file extension to side-effect command templates.
// Short form: a plain sequence of templates. Expanded form adds exclude
// globs for files the hook should skip.
type ExtensionHook struct {
	Commands []string `yaml:"commands"`
	Exclude  []string `yaml:"exclude"`
}

// UnmarshalYAML allows an ExtensionHook to be specified as either a
// plain sequence of command templates or a mapping with commands and
// exclude fields.
func (h *ExtensionHook) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&h.Commands)
	}
	type plain ExtensionHook // avoid recursion
	return value.Decode((*plain)(h))
}

// StopHook is one command executed when the agent loop ends.
type StopHook struct {
	Command string `yaml:"command"`
}

// UnmarshalYAML allows a StopHook to be specified as either a plain
// string or a mapping with a command field.
func (s *StopHook) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Command = value.Value
		return nil
	}
	type plain StopHook
	return value.Decode((*plain)(s))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level   types.LogLevel `yaml:"level"`
	NoColor bool           `yaml:"no_color"`
	// File is an optional plain-text log target. Hooks run with stderr
	// hidden by most agents, so this is the durable diagnostic channel.
	File string `yaml:"file"`
}

// DefaultConfigPath returns the default config file path
// (~/.config/claw-hooks/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "claw-hooks", "config.yaml")
}

// DefaultLogPath returns the default debug log file path.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "claw-hooks.log"
	}
	return filepath.Join(home, ".config", "claw-hooks", "logs", "claw-hooks.log")
}

// DefaultConfig returns the default configuration: all built-in filters
// enabled with their default messages, no custom filters or hooks.
func DefaultConfig() *Config {
	return &Config{
		Filters: FiltersConfig{
			Kill: BuiltinFilter{Enabled: true},
			Dd:   BuiltinFilter{Enabled: true},
			Rm:   BuiltinFilter{Enabled: true},
		},
		Log: LogConfig{
			Level: types.LogLevelInfo,
		},
	}
}

// isUnknownFieldError returns true if the error is from
// yaml.Decoder.KnownFields(true) detecting an unrecognized key.
func isUnknownFieldError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found in type")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Load does not call Validate; callers apply overrides first
// and validate themselves.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Strict decode first to warn about typos like "custom_filtres:",
	// then re-parse leniently for forward compatibility.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if isUnknownFieldError(err) {
			cfgLog.Warn("config has unknown fields (ignored): %v", err)
			cfg = DefaultConfig()
			if err2 := yaml.Unmarshal(data, cfg); err2 != nil {
				return nil, fmt.Errorf("config parse error: %w", err2)
			}
		} else {
			return nil, fmt.Errorf("config parse error: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks all Config fields and returns a numbered multi-error
// report. Invalid custom-filter patterns are reported here as errors for
// the `check` command; the filter chain itself skips them non-fatally.
func (c *Config) Validate() error {
	var errs []string

	if !c.Log.Level.Valid() {
		errs = append(errs, fmt.Sprintf("log.level: unknown log level %q (valid: trace, debug, info, warn, error)", c.Log.Level))
	}

	for i, cf := range c.CustomFilters {
		if cf.Command == "" {
			errs = append(errs, fmt.Sprintf("custom_filters[%d]: command must not be empty", i))
			continue
		}
		if _, err := regexp.Compile(cf.Command); err != nil {
			errs = append(errs, fmt.Sprintf("custom_filters[%d]: invalid pattern %q: %v", i, cf.Command, err))
		}
		if cf.Message == "" {
			errs = append(errs, fmt.Sprintf("custom_filters[%d]: message must not be empty", i))
		}
	}

	for ext, hook := range c.ExtensionHooks {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("extension_hooks.%s: extension must include the leading dot", ext))
		}
		if len(hook.Commands) == 0 {
			errs = append(errs, fmt.Sprintf("extension_hooks.%s: at least one command template is required", ext))
		}
		for i, tmpl := range hook.Commands {
			if strings.TrimSpace(tmpl) == "" {
				errs = append(errs, fmt.Sprintf("extension_hooks.%s[%d]: command template must not be empty", ext, i))
				continue
			}
			if !strings.Contains(tmpl, "{file}") {
				errs = append(errs, fmt.Sprintf("extension_hooks.%s[%d]: template %q is missing the {file} placeholder", ext, i, tmpl))
			}
		}
		for i, pat := range hook.Exclude {
			if _, err := glob.Compile(pat, '/'); err != nil {
				errs = append(errs, fmt.Sprintf("extension_hooks.%s exclude[%d]: invalid glob %q: %v", ext, i, pat, err))
			}
		}
	}

	for i, hook := range c.StopHooks {
		if strings.TrimSpace(hook.Command) == "" {
			errs = append(errs, fmt.Sprintf("stop_hooks[%d]: command must not be empty", i))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for i, e := range errs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e)
	}
	return errors.New(sb.String())
}
