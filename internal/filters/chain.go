package filters

import (
	"sort"

	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/shell"
	"github.com/owayo/claw-hooks/internal/types"
)

// Chain holds all configured filters sorted by priority.
type Chain struct {
	filters []Filter
}

// NewChain builds the filter chain from configuration. Custom filter
// entries with an invalid pattern are skipped with a warning so one bad
// entry cannot take the whole gate offline. Side-effect filters are
// added only when at least one hook is configured.
func NewChain(cfg *config.Config, run CommandRunner) *Chain {
	ext := shell.NewExtractor()

	var fs []Filter
	fs = append(fs,
		NewKillFilter(cfg.Filters.Kill, ext),
		NewDdFilter(cfg.Filters.Dd, ext),
		NewRmFilter(cfg.Filters.Rm, ext),
	)
	for _, custom := range cfg.CustomFilters {
		f, err := NewCustomFilter(custom, ext)
		if err != nil {
			fltLog.Warn("skipping custom filter: %v", err)
			continue
		}
		fs = append(fs, f)
	}
	if len(cfg.ExtensionHooks) > 0 {
		fs = append(fs, NewExtensionFilter(cfg.ExtensionHooks, run))
	}
	if len(cfg.StopHooks) > 0 {
		fs = append(fs, NewStopFilter(cfg.StopHooks, run))
	}

	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].Priority() < fs[j].Priority()
	})
	return &Chain{filters: fs}
}

// NewEmptyChain returns a chain with no filters. Every event is allowed.
// Used by the CLAW_HOOKS_DISABLE kill switch.
func NewEmptyChain() *Chain {
	return &Chain{}
}

// Execute runs the event through the chain. The first block wins and
// short-circuits. Allow decisions carrying advisory context do not
// merge: the first context seen is kept and later ones are dropped.
func (c *Chain) Execute(in *types.HookInput) types.Decision {
	context := ""
	for _, f := range c.filters {
		if !f.AppliesTo(in) {
			continue
		}
		d := f.Execute(in)
		if d.Blocked {
			fltLog.Info("%s filter blocked event", f.Name())
			return d
		}
		if context == "" && d.Context != "" {
			context = d.Context
		}
	}
	if context != "" {
		return types.AllowWithContext(context)
	}
	return types.Allow()
}

// Len reports how many filters are active, for diagnostics.
func (c *Chain) Len() int { return len(c.filters) }
