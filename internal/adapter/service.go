package adapter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/owayo/claw-hooks/internal/filters"
	"github.com/owayo/claw-hooks/internal/types"
)

// BlockedExitCode is the process status agents read as a block.
const BlockedExitCode = 2

// Service wires one adapter to the filter chain: read one event, decide,
// write one response. One decision per process lifetime.
type Service struct {
	chain   *filters.Chain
	adapter Adapter
}

// NewService builds a hook service for a format.
func NewService(chain *filters.Chain, format Format) *Service {
	return &Service{chain: chain, adapter: New(format)}
}

// Run reads a single hook event from r, writes the decision payload to
// w and returns the process exit code. Empty input and parse failures
// fail closed: a block-shaped payload and the blocked exit code, never
// an implicit allow.
func (s *Service) Run(r io.Reader, w io.Writer) int {
	data, err := io.ReadAll(r)
	if err != nil {
		return s.failClosed(w, fmt.Sprintf("read stdin: %v", err))
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return s.failClosed(w, "no input received on stdin")
	}

	in, err := s.adapter.ParseInput(data)
	if err != nil {
		return s.failClosed(w, err.Error())
	}
	adpLog.Debug("event=%s tool=%s", in.Event, in.ToolName)

	decision := s.chain.Execute(in)

	// Advisory context is only meaningful after the tool ran.
	if in.Event != types.EventPostToolUse {
		decision.Context = ""
	}

	out, err := s.adapter.FormatOutput(decision)
	if err != nil {
		return s.failClosed(w, fmt.Sprintf("serialize output: %v", err))
	}
	fmt.Fprintln(w, string(out))
	return decision.ExitCode()
}

func (s *Service) failClosed(w io.Writer, message string) int {
	adpLog.Error("fail-closed: %s", message)
	fmt.Fprintln(w, string(s.adapter.FormatError(message)))
	return BlockedExitCode
}
