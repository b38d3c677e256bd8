// Package types defines the canonical event and decision shapes shared
// across the codebase. Format adapters translate agent-specific wire
// formats into these types; filters consume them read-only.
package types

import "strings"

// Event represents the hook event kind.
type Event string

const (
	// EventPreToolUse fires before a tool call executes.
	EventPreToolUse Event = "PreToolUse"
	// EventPostToolUse fires after a tool call completed.
	EventPostToolUse Event = "PostToolUse"
	// EventStop fires when the agent loop ends.
	EventStop Event = "Stop"
)

// Valid returns true if the Event is a known valid value.
func (e Event) Valid() bool {
	return e == EventPreToolUse || e == EventPostToolUse || e == EventStop
}

// Tool names as reported by agents. Adapters normalize their own
// vocabulary (e.g. Cursor's beforeShellExecution) onto these.
const (
	ToolBash      = "Bash"
	ToolWrite     = "Write"
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
	ToolStop      = "Stop"
)

// IsFileTool returns true for tools that write or edit a file.
func IsFileTool(name string) bool {
	return name == ToolWrite || name == ToolEdit || name == ToolMultiEdit
}

// BashInput is the payload of a shell-execution tool call.
// Command is the literal, unexpanded shell text; it is never executed here.
type BashInput struct {
	Command string `json:"command"`
	// Timeout in milliseconds, if the agent supplies one.
	Timeout int64 `json:"timeout,omitempty"`
}

// FileInput is the payload of a file write/edit tool call.
type FileInput struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content,omitempty"`
}

// StopInput is the payload of a Stop event.
type StopInput struct {
	Status    string `json:"status,omitempty"`
	LoopCount int    `json:"loop_count,omitempty"`
	Response  string `json:"response,omitempty"`
}

// HookInput is one decoded hook event. Constructed once per invocation
// by a format adapter, consumed read-only, discarded after one decision.
type HookInput struct {
	Event     Event
	ToolName  string
	Bash      *BashInput
	File      *FileInput
	Stop      *StopInput
	SessionID string
}

// Decision is the outcome of running a hook event through the filter
// chain. Exactly one of the two kinds is active: a block always carries
// a message, an allow may carry advisory context.
type Decision struct {
	Blocked bool
	// Message is the user-facing explanation; non-empty iff Blocked.
	Message string
	// Context is advisory text attached to an allow (e.g. formatter
	// output). Only meaningful to callers on PostToolUse events.
	Context string
}

// Allow returns a plain allow decision.
func Allow() Decision {
	return Decision{}
}

// AllowWithContext returns an allow decision carrying advisory context.
func AllowWithContext(ctx string) Decision {
	return Decision{Context: ctx}
}

// Block returns a block decision with the given message.
func Block(message string) Decision {
	return Decision{Blocked: true, Message: message}
}

// ExitCode maps the decision to a process exit status: 0 for allow,
// 2 for block. Parse failures at the boundary reuse the block exit
// code (fail-closed).
func (d Decision) ExitCode() int {
	if d.Blocked {
		return 2
	}
	return 0
}

// LogLevel represents a configured log verbosity.
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Valid returns true if the LogLevel is a known valid value.
// The empty string is valid and means the default (info).
func (l LogLevel) Valid() bool {
	switch LogLevel(strings.ToLower(string(l))) {
	case "", LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}
