package filters

import (
	"fmt"
	"strings"
	"testing"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/types"
)

type fakeCall struct {
	name string
	args []string
}

// fakeRunner records invocations and replays scripted results keyed by
// program name.
func fakeRunner(calls *[]fakeCall, results map[string]struct {
	out string
	err error
}) CommandRunner {
	return func(name string, args ...string) ([]byte, error) {
		*calls = append(*calls, fakeCall{name: name, args: args})
		r := results[name]
		return []byte(r.out), r.err
	}
}

func hooks(ext string, commands ...string) map[string]config.ExtensionHook {
	return map[string]config.ExtensionHook{
		ext: {Commands: commands},
	}
}

func TestExtensionFilter_AppliesTo(t *testing.T) {
	f := NewExtensionFilter(hooks(".go", "gofmt -w {file}"), nil)

	tests := []struct {
		name string
		in   *types.HookInput
		want bool
	}{
		{"post edit of mapped extension", fileEvent(types.EventPostToolUse, "main.go"), true},
		{"pre write of mapped extension", fileEvent(types.EventPreToolUse, "main.go"), true},
		{"unmapped extension", fileEvent(types.EventPostToolUse, "main.py"), false},
		{"fullwidth extension folds to mapped", fileEvent(types.EventPostToolUse, "main.ｇｏ"), true},
		{"zero width space stripped from path", fileEvent(types.EventPostToolUse, "main​.go"), true},
		{"no extension", fileEvent(types.EventPostToolUse, "Makefile"), false},
		{"bash event", bashEvent("ls"), false},
		{"stop event", stopEvent(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.AppliesTo(tt.in); got != tt.want {
				t.Errorf("AppliesTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtensionFilter_RunsTemplates(t *testing.T) {
	var calls []fakeCall
	run := fakeRunner(&calls, nil)
	f := NewExtensionFilter(hooks(".go", "gofmt -w {file}", "golangci-lint run {file}"), run)

	d := f.Execute(fileEvent(types.EventPostToolUse, "pkg/server.go"))
	if d.Blocked {
		t.Fatal("extension hooks must never block")
	}
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].name != "gofmt" || calls[0].args[0] != "-w" || calls[0].args[1] != "pkg/server.go" {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].name != "golangci-lint" || calls[1].args[1] != "pkg/server.go" {
		t.Errorf("second call = %+v", calls[1])
	}
}

func TestExtensionFilter_InlinePlaceholder(t *testing.T) {
	var calls []fakeCall
	f := NewExtensionFilter(hooks(".py", "ruff check --stdin-filename={file}"), fakeRunner(&calls, nil))

	f.Execute(fileEvent(types.EventPostToolUse, "app.py"))
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if want := "--stdin-filename=app.py"; calls[0].args[1] != want {
		t.Errorf("arg = %q, want %q", calls[0].args[1], want)
	}
}

func TestExtensionFilter_AggregatesOutput(t *testing.T) {
	var calls []fakeCall
	results := map[string]struct {
		out string
		err error
	}{
		"formatter": {out: "reformatted app.py\n"},
		"linter":    {out: "syntax error\n", err: fmt.Errorf("exit status 1")},
		"silent":    {},
	}
	f := NewExtensionFilter(hooks(".py", "formatter {file}", "linter {file}", "silent {file}"), fakeRunner(&calls, results))

	d := f.Execute(fileEvent(types.EventPostToolUse, "app.py"))
	if d.Blocked {
		t.Fatal("must not block")
	}
	if !strings.Contains(d.Context, "reformatted app.py") || !strings.Contains(d.Context, "syntax error") {
		t.Errorf("context = %q, want both outputs", d.Context)
	}
	if len(calls) != 3 {
		t.Errorf("calls = %d, want all templates to run", len(calls))
	}
}

func TestExtensionFilter_NoOutputNoContext(t *testing.T) {
	var calls []fakeCall
	f := NewExtensionFilter(hooks(".go", "gofmt -w {file}"), fakeRunner(&calls, nil))

	d := f.Execute(fileEvent(types.EventPostToolUse, "main.go"))
	if d.Context != "" {
		t.Errorf("context = %q, want empty", d.Context)
	}
}

func TestExtensionFilter_MalformedTemplate(t *testing.T) {
	var calls []fakeCall
	f := NewExtensionFilter(hooks(".go", "gofmt -w", "gofmt -l {file}"), fakeRunner(&calls, nil))

	d := f.Execute(fileEvent(types.EventPostToolUse, "main.go"))
	if d.Blocked {
		t.Fatal("must not block")
	}
	if !strings.Contains(d.Context, "hook error") {
		t.Errorf("context = %q, want error entry for template without placeholder", d.Context)
	}
	// The malformed template must not abort the rest of the list.
	if len(calls) != 1 || calls[0].args[1] != "main.go" {
		t.Errorf("calls = %+v, want the valid template to still run", calls)
	}
}

func TestExtensionFilter_RejectsDangerousPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"traversal", "../../etc/passwd.go"},
		{"leading dash", "-rf.go"},
		{"backtick", "a`whoami`.go"},
		{"dollar", "a$(id).go"},
		{"semicolon", "a;b.go"},
		{"pipe", "a|b.go"},
		{"newline", "a\nb.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []fakeCall
			f := NewExtensionFilter(hooks(".go", "gofmt -w {file}"), fakeRunner(&calls, nil))

			d := f.Execute(fileEvent(types.EventPostToolUse, tt.path))
			if d.Blocked {
				t.Fatal("must not block")
			}
			if len(calls) != 0 {
				t.Errorf("command ran for dangerous path %q", tt.path)
			}
			if !strings.Contains(d.Context, "hook error") {
				t.Errorf("context = %q, want error entry", d.Context)
			}
		})
	}
}

func TestExtensionFilter_ExcludeGlobs(t *testing.T) {
	var calls []fakeCall
	cfg := map[string]config.ExtensionHook{
		".go": {
			Commands: []string{"gofmt -w {file}"},
			Exclude:  []string{"vendor/**", "**/*_gen.go"},
		},
	}
	f := NewExtensionFilter(cfg, fakeRunner(&calls, nil))

	if f.AppliesTo(fileEvent(types.EventPostToolUse, "vendor/lib/x.go")) {
		t.Error("vendored file should be excluded")
	}
	if f.AppliesTo(fileEvent(types.EventPostToolUse, "internal/api_gen.go")) {
		t.Error("generated file should be excluded")
	}
	if !f.AppliesTo(fileEvent(types.EventPostToolUse, "internal/api.go")) {
		t.Error("regular file should apply")
	}
}
