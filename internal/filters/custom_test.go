package filters

import (
	"testing"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/shell"
)

func mustCustom(t *testing.T, cfg config.CustomFilter) Filter {
	t.Helper()
	f, err := NewCustomFilter(cfg, shell.NewExtractor())
	if err != nil {
		t.Fatalf("NewCustomFilter: %v", err)
	}
	return f
}

func TestCustomFilter_PatternMode(t *testing.T) {
	yarn := mustCustom(t, config.CustomFilter{Command: "yarn", Message: "Use pnpm instead"})

	tests := []struct {
		name      string
		command   string
		wantBlock bool
	}{
		{"direct", "yarn install", true},
		{"with subcommand", "yarn add react", true},
		{"after semicolon", `echo "install"; yarn install`, true},
		{"chained", "cd /app && yarn build", true},
		{"piped", "ls | yarn why lodash", true},
		{"via substitution", "echo $(yarn --version)", true},
		{"via backticks", "echo `yarn --version`", true},
		{"only in quotes", `echo "not yarn install"; pnpm install`, false},
		{"only in single quotes", "echo 'yarn is great'", false},
		{"different tool", "pnpm install", false},
		{"substring of another command", "grep yarn package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := yarn.Execute(bashEvent(tt.command))
			if d.Blocked != tt.wantBlock {
				t.Errorf("Execute(%q).Blocked = %v, want %v", tt.command, d.Blocked, tt.wantBlock)
			}
			if tt.wantBlock && d.Message != "Use pnpm instead" {
				t.Errorf("message = %q", d.Message)
			}
		})
	}
}

func TestCustomFilter_PatternMode_AlreadyAnchored(t *testing.T) {
	f := mustCustom(t, config.CustomFilter{Command: "^python[0-9]?$", Message: "use uv"})

	if d := f.Execute(bashEvent("python3 script.py")); !d.Blocked {
		t.Error("python3 should block")
	}
	if d := f.Execute(bashEvent("pythonista run")); d.Blocked {
		t.Error("pythonista should allow")
	}
}

func TestCustomFilter_ArgumentMode(t *testing.T) {
	npm := mustCustom(t, config.CustomFilter{
		Command: "npm",
		Args:    []string{"install", "i", "add"},
		Message: "Use pnpm for dependency management",
	})

	tests := []struct {
		name      string
		command   string
		wantBlock bool
	}{
		{"install blocks", "npm install lodash", true},
		{"short alias blocks", "npm i lodash", true},
		{"add blocks", "npm add lodash", true},
		{"other subcommand allows", "npm run build", false},
		{"bare command allows", "npm", false},
		{"chained install blocks", "cd app && npm install", true},
		{"similar head allows", "npmx install", false},
		{"argument elsewhere allows", "echo npm install", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := npm.Execute(bashEvent(tt.command))
			if d.Blocked != tt.wantBlock {
				t.Errorf("Execute(%q).Blocked = %v, want %v", tt.command, d.Blocked, tt.wantBlock)
			}
		})
	}
}

func TestCustomFilter_ArgumentMode_EmptyArgs(t *testing.T) {
	// An explicitly empty args list matches on the head alone.
	f := mustCustom(t, config.CustomFilter{Command: "cargo", Args: []string{}, Message: "m"})

	if d := f.Execute(bashEvent("cargo build")); !d.Blocked {
		t.Error("cargo build should block")
	}
	if d := f.Execute(bashEvent("rustc main.rs")); d.Blocked {
		t.Error("rustc should allow")
	}
}

func TestCustomFilter_InvalidPattern(t *testing.T) {
	_, err := NewCustomFilter(config.CustomFilter{Command: "[unclosed", Message: "m"}, shell.NewExtractor())
	if err == nil {
		t.Fatal("want error for invalid pattern")
	}
}

func TestCustomFilter_AppliesOnlyToPreBash(t *testing.T) {
	f := mustCustom(t, config.CustomFilter{Command: "yarn", Message: "m"})
	if f.AppliesTo(stopEvent()) {
		t.Error("should not apply to stop events")
	}
	if !f.AppliesTo(bashEvent("anything")) {
		t.Error("should apply to pre-tool-use bash")
	}
}
