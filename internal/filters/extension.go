package filters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/shell"
	"github.com/owayo/claw-hooks/internal/types"
)

// extensionFilter runs configured side-effect commands when a file with
// a mapped extension is written or edited. It never blocks: captured
// command output is attached to the Allow decision as advisory context
// so post-edit events can surface formatter and linter findings.
type extensionFilter struct {
	hooks   map[string]config.ExtensionHook
	exclude map[string][]glob.Glob
	run     CommandRunner
}

// NewExtensionFilter builds the filter from validated config. Exclude
// patterns failing to compile were already rejected by config.Validate;
// any that slip through are dropped here with a warning.
func NewExtensionFilter(hooks map[string]config.ExtensionHook, run CommandRunner) Filter {
	if run == nil {
		run = DefaultRunner
	}
	exclude := make(map[string][]glob.Glob)
	for ext, hook := range hooks {
		for _, pat := range hook.Exclude {
			g, err := glob.Compile(pat, '/')
			if err != nil {
				fltLog.Warn("dropping exclude pattern %q for %s: %v", pat, ext, err)
				continue
			}
			exclude[ext] = append(exclude[ext], g)
		}
	}
	return &extensionFilter{hooks: hooks, exclude: exclude, run: run}
}

func (f *extensionFilter) Name() string  { return "extension" }
func (f *extensionFilter) Priority() int { return prioritySideEffect }

func (f *extensionFilter) AppliesTo(in *types.HookInput) bool {
	if in.Event != types.EventPreToolUse && in.Event != types.EventPostToolUse {
		return false
	}
	if !types.IsFileTool(in.ToolName) || in.File == nil {
		return false
	}
	path := shell.Normalize(in.File.FilePath)
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	hook, ok := f.hooks[ext]
	if !ok || len(hook.Commands) == 0 {
		return false
	}
	for _, g := range f.exclude[ext] {
		if g.Match(path) {
			fltLog.Debug("file %s excluded from %s hooks", path, ext)
			return false
		}
	}
	return true
}

func (f *extensionFilter) Execute(in *types.HookInput) types.Decision {
	path := shell.Normalize(in.File.FilePath)
	hook := f.hooks[filepath.Ext(path)]

	var outputs []string
	for _, template := range hook.Commands {
		out, err := f.runTemplate(template, path)
		if err != nil {
			fltLog.Warn("extension hook %q failed: %v", template, err)
			outputs = append(outputs, fmt.Sprintf("hook error: %v", err))
			continue
		}
		if out = strings.TrimSpace(out); out != "" {
			outputs = append(outputs, out)
		}
	}

	if len(outputs) > 0 {
		return types.AllowWithContext(strings.Join(outputs, "\n"))
	}
	return types.Allow()
}

// runTemplate resolves the {file} placeholder and spawns the command
// with the path as a discrete argument, never through a shell. The
// placeholder may stand alone or sit inside a larger token such as
// --file={file}.
func (f *extensionFilter) runTemplate(template, path string) (string, error) {
	if err := validateFilePath(path); err != nil {
		return "", err
	}
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty command template")
	}

	found := false
	args := make([]string, 0, len(fields)-1)
	for _, field := range fields[1:] {
		if strings.Contains(field, "{file}") {
			found = true
			field = strings.ReplaceAll(field, "{file}", path)
		}
		args = append(args, field)
	}
	if !found {
		return "", fmt.Errorf("template %q missing {file} placeholder", template)
	}

	fltLog.Debug("running extension hook: %s %v", fields[0], args)
	out, err := f.run(fields[0], args...)
	if err != nil {
		if len(out) > 0 {
			// Non-zero exit with output is a finding, not a failure.
			return string(out), nil
		}
		return "", fmt.Errorf("spawn %s: %w", fields[0], err)
	}
	return string(out), nil
}

// validateFilePath rejects paths an external tool could misread as a
// traversal, a flag, or a shell fragment.
func validateFilePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal in %q", path)
	}
	if strings.HasPrefix(path, "-") {
		return fmt.Errorf("path %q starts with '-'", path)
	}
	if strings.ContainsAny(path, "`$|&;\n\r\x00") {
		return fmt.Errorf("path %q contains shell metacharacter", path)
	}
	return nil
}
