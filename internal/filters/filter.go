// Package filters implements the decision pipeline run over every hook
// event: built-in deny lists for process-kill, disk-dump and destructive
// delete commands, user-defined pattern filters, and side-effect hooks
// for file edits and session end. Filters are ordered by priority and
// the first block wins; side-effect filters run last and never block.
package filters

import (
	"github.com/owayo/claw-hooks/internal/logger"
	"github.com/owayo/claw-hooks/internal/types"
)

var fltLog = logger.New("filters")

// Filter is one stage of the decision pipeline.
type Filter interface {
	// Name identifies the filter in logs.
	Name() string

	// AppliesTo reports whether the filter should run for this event.
	// It checks event kind, subject tool and the enabled flag only;
	// the actual command analysis happens in Execute.
	AppliesTo(in *types.HookInput) bool

	// Execute computes the filter's decision for an applicable event.
	Execute(in *types.HookInput) types.Decision

	// Priority orders filters in the chain, lower runs first. Gating
	// filters sit below prioritySideEffect so a block always precedes
	// any side effect.
	Priority() int
}

const (
	priorityKill       = 10
	priorityDd         = 15
	priorityRm         = 20
	priorityCustom     = 50
	prioritySideEffect = 100
)
