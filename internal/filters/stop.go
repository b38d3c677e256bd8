package filters

import (
	"strings"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/types"
)

// stopFilter runs configured commands when the agent session ends.
// Hooks are best effort: failures are logged and the event is always
// allowed through.
type stopFilter struct {
	hooks []config.StopHook
	run   CommandRunner
}

// NewStopFilter builds the session-end filter.
func NewStopFilter(hooks []config.StopHook, run CommandRunner) Filter {
	if run == nil {
		run = DefaultRunner
	}
	return &stopFilter{hooks: hooks, run: run}
}

func (f *stopFilter) Name() string  { return "stop" }
func (f *stopFilter) Priority() int { return prioritySideEffect }

func (f *stopFilter) AppliesTo(in *types.HookInput) bool {
	return in.Event == types.EventStop
}

func (f *stopFilter) Execute(_ *types.HookInput) types.Decision {
	for _, hook := range f.hooks {
		fields := strings.Fields(hook.Command)
		if len(fields) == 0 {
			continue
		}
		fltLog.Debug("running stop hook: %s", hook.Command)
		if out, err := f.run(fields[0], fields[1:]...); err != nil {
			fltLog.Warn("stop hook %q failed: %v (%s)", hook.Command, err, strings.TrimSpace(string(out)))
		}
	}
	return types.Allow()
}
