package filters

import (
	"strings"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/shell"
	"github.com/owayo/claw-hooks/internal/types"
)

const (
	defaultKillMessage = "🚫 kill/pkill/killall command blocked for safety. Use safe-kill: safe-kill <PID>, safe-kill -N <name>, or safe-kill -p <port>."
	defaultDdMessage   = "🚫 dd command is blocked for safety. Use cp or rsync for file operations. If you need dd specifically, use safe-dd or request explicit permission."
	defaultRmMessage   = "🚫 rm/rmdir command blocked for safety. Configure filters.rm.message in config.yaml to customize this message."
)

// denylistFilter blocks shell commands whose extracted program names
// intersect a fixed deny list. The kill variant additionally scans pipe
// segments for xargs feeding a denied name, so "pgrep node | xargs kill"
// is caught even when kill never heads a segment.
type denylistFilter struct {
	name      string
	priority  int
	enabled   bool
	message   string
	denied    map[string]bool
	scanXargs bool
	extractor *shell.Extractor
}

func newDenylist(name string, priority int, cfg config.BuiltinFilter, defaultMsg string, denied []string, ext *shell.Extractor) *denylistFilter {
	msg := cfg.Message
	if msg == "" {
		msg = defaultMsg
	}
	m := make(map[string]bool, len(denied))
	for _, d := range denied {
		m[d] = true
	}
	return &denylistFilter{
		name:      name,
		priority:  priority,
		enabled:   cfg.Enabled,
		message:   msg,
		denied:    m,
		extractor: ext,
	}
}

// NewKillFilter blocks process-kill commands (Unix and Windows forms).
func NewKillFilter(cfg config.BuiltinFilter, ext *shell.Extractor) Filter {
	f := newDenylist("kill", priorityKill, cfg, defaultKillMessage,
		[]string{"kill", "pkill", "killall", "taskkill"}, ext)
	f.scanXargs = true
	return f
}

// NewDdFilter blocks raw disk-dump commands.
func NewDdFilter(cfg config.BuiltinFilter, ext *shell.Extractor) Filter {
	return newDenylist("dd", priorityDd, cfg, defaultDdMessage,
		[]string{"dd"}, ext)
}

// NewRmFilter blocks destructive delete commands (Unix and Windows forms).
func NewRmFilter(cfg config.BuiltinFilter, ext *shell.Extractor) Filter {
	return newDenylist("rm", priorityRm, cfg, defaultRmMessage,
		[]string{"rm", "rmdir", "del", "erase"}, ext)
}

func (f *denylistFilter) Name() string  { return f.name }
func (f *denylistFilter) Priority() int { return f.priority }

func (f *denylistFilter) AppliesTo(in *types.HookInput) bool {
	if !f.enabled {
		return false
	}
	return in.Event == types.EventPreToolUse && in.ToolName == types.ToolBash && in.Bash != nil
}

func (f *denylistFilter) Execute(in *types.HookInput) types.Decision {
	command := in.Bash.Command
	for _, name := range f.extractor.Commands(command) {
		if f.denied[name] {
			fltLog.Debug("%s filter matched command %q", f.name, name)
			return types.Block(f.message)
		}
	}
	if f.scanXargs && f.xargsFeedsDenied(command) {
		fltLog.Debug("%s filter matched xargs pipe segment", f.name)
		return types.Block(f.message)
	}
	return types.Allow()
}

// xargsFeedsDenied checks pipe segments headed by xargs for a denied
// name among the non-flag arguments. The extractor's own xargs handling
// already covers the common case; this scan also catches segments the
// extractor gave up on.
func (f *denylistFilter) xargsFeedsDenied(command string) bool {
	for _, segment := range strings.Split(command, "|") {
		fields := strings.Fields(strings.TrimSpace(segment))
		if len(fields) == 0 || fields[0] != "xargs" {
			continue
		}
		for _, arg := range fields[1:] {
			if strings.HasPrefix(arg, "-") {
				continue
			}
			if f.denied[arg] {
				return true
			}
		}
	}
	return false
}
