package filters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/shell"
	"github.com/owayo/claw-hooks/internal/types"
)

// customFilter blocks shell commands matching a user-configured pattern.
//
// Pattern mode (no args configured) anchors the pattern to the start and
// tests it against each segment's quote-stripped text and against every
// extracted command name. Quote stripping keeps "echo \"yarn install\""
// from matching a yarn pattern, while the extracted names still catch
// yarn hidden inside $(...) substitution.
//
// Argument mode (args configured) fully anchors the pattern against the
// segment head token and requires the first argument to equal one of the
// configured values exactly. An empty args list matches the head alone.
type customFilter struct {
	pattern   *regexp.Regexp
	args      []string
	argMode   bool
	message   string
	extractor *shell.Extractor
}

// NewCustomFilter compiles one custom filter entry. It returns an error
// on an invalid pattern; the chain skips such entries with a warning.
func NewCustomFilter(cfg config.CustomFilter, ext *shell.Extractor) (Filter, error) {
	argMode := cfg.Args != nil
	expr := cfg.Command
	if argMode {
		expr = "^(?:" + expr + ")$"
	} else if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", cfg.Command, err)
	}
	return &customFilter{
		pattern:   re,
		args:      cfg.Args,
		argMode:   argMode,
		message:   cfg.Message,
		extractor: ext,
	}, nil
}

func (f *customFilter) Name() string  { return "custom:" + f.pattern.String() }
func (f *customFilter) Priority() int { return priorityCustom }

func (f *customFilter) AppliesTo(in *types.HookInput) bool {
	return in.Event == types.EventPreToolUse && in.ToolName == types.ToolBash && in.Bash != nil
}

func (f *customFilter) Execute(in *types.HookInput) types.Decision {
	command := in.Bash.Command
	if f.argMode {
		if f.matchesArgs(command) {
			return types.Block(f.message)
		}
		return types.Allow()
	}
	if f.matchesPattern(command) {
		return types.Block(f.message)
	}
	return types.Allow()
}

func (f *customFilter) matchesPattern(command string) bool {
	for _, segment := range f.extractor.Segments(command) {
		if f.pattern.MatchString(shell.StripQuoted(segment.Raw)) {
			return true
		}
	}
	for _, name := range f.extractor.Commands(command) {
		if f.pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func (f *customFilter) matchesArgs(command string) bool {
	for _, segment := range f.extractor.Segments(command) {
		if len(segment.Tokens) == 0 || !f.pattern.MatchString(segment.Tokens[0]) {
			continue
		}
		if len(f.args) == 0 {
			return true
		}
		if len(segment.Tokens) < 2 {
			continue
		}
		for _, want := range f.args {
			if segment.Tokens[1] == want {
				return true
			}
		}
	}
	return false
}
