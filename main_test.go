package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/owayo/claw-hooks/internal/config"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flagPath string
		env      config.Env
		want     string
	}{
		{"env wins over flag", "/flag.yaml", config.Env{Config: "/env.yaml"}, "/env.yaml"},
		{"flag when no env", "/flag.yaml", config.Env{}, "/flag.yaml"},
		{"default when neither", "", config.Env{}, config.DefaultConfigPath()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveConfigPath(tt.flagPath, tt.env); got != tt.want {
				t.Errorf("resolveConfigPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("filters: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A broken config file must not disable the gate.
	cfg := loadConfig(path)
	if cfg == nil || !cfg.Filters.Kill.Enabled {
		t.Error("broken config must yield active defaults")
	}
}

func TestDefaultConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated template must parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("generated template must validate: %v", err)
	}
	if !cfg.Filters.Kill.Enabled || !cfg.Filters.Dd.Enabled || !cfg.Filters.Rm.Enabled {
		t.Error("template must enable all built-in filters")
	}
	if !strings.Contains(defaultConfigTemplate, "extension_hooks") {
		t.Error("template should document extension_hooks")
	}
}
