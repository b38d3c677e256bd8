// Package adapter translates between agent-specific hook wire formats
// and the canonical event and decision types. Claude Code is the
// default; Cursor and Windsurf map their own hook shapes onto the same
// event model. Parse failures never turn into an allow: the caller
// emits a block-shaped error payload and the blocked exit code.
package adapter

import (
	"fmt"

	"github.com/owayo/claw-hooks/internal/logger"
	"github.com/owayo/claw-hooks/internal/types"
)

var adpLog = logger.New("adapter")

// Format selects the agent wire format.
type Format string

const (
	FormatClaude   Format = "claude"
	FormatCursor   Format = "cursor"
	FormatWindsurf Format = "windsurf"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatClaude, FormatCursor, FormatWindsurf:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want claude, cursor or windsurf)", s)
}

// Adapter parses one agent's input shape and serializes decisions back.
type Adapter interface {
	// ParseInput decodes one hook event from raw stdin bytes.
	ParseInput(data []byte) (*types.HookInput, error)

	// FormatOutput serializes a decision for the agent.
	FormatOutput(d types.Decision) ([]byte, error)

	// FormatError builds the fail-closed error payload emitted when
	// input could not be parsed at all.
	FormatError(message string) []byte
}

// New returns the adapter for a format.
func New(f Format) Adapter {
	switch f {
	case FormatCursor:
		return &cursorAdapter{}
	case FormatWindsurf:
		return &windsurfAdapter{}
	default:
		return &claudeAdapter{}
	}
}
