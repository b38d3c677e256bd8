package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/owayo/claw-hooks/internal/types"
)

// claudeInput is the Claude Code hook payload. Stop events carry no
// tool fields.
type claudeInput struct {
	HookEventName string          `json:"hook_event_name"`
	ToolName      string          `json:"tool_name"`
	ToolInput     json.RawMessage `json:"tool_input"`
	SessionID     string          `json:"session_id"`
}

// claudeOutput is also the Windsurf output shape.
type claudeOutput struct {
	Decision string `json:"decision"`
	Message  string `json:"message,omitempty"`
}

type claudeAdapter struct{}

func (a *claudeAdapter) ParseInput(data []byte) (*types.HookInput, error) {
	var in claudeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse claude input: %w", err)
	}
	if in.HookEventName == "" {
		return nil, fmt.Errorf("missing hook_event_name field")
	}

	out := &types.HookInput{
		Event:     types.Event(in.HookEventName),
		ToolName:  in.ToolName,
		SessionID: in.SessionID,
	}
	if out.Event == types.EventStop {
		out.ToolName = types.ToolStop
		out.Stop = &types.StopInput{}
		return out, nil
	}

	if in.ToolName == "" {
		return nil, fmt.Errorf("missing tool_name field")
	}
	if len(in.ToolInput) == 0 {
		return nil, fmt.Errorf("missing tool_input field")
	}
	switch {
	case in.ToolName == types.ToolBash:
		var bash types.BashInput
		if err := json.Unmarshal(in.ToolInput, &bash); err != nil {
			return nil, fmt.Errorf("parse tool_input: %w", err)
		}
		out.Bash = &bash
	case types.IsFileTool(in.ToolName):
		var file types.FileInput
		if err := json.Unmarshal(in.ToolInput, &file); err != nil {
			return nil, fmt.Errorf("parse tool_input: %w", err)
		}
		out.File = &file
	default:
		adpLog.Debug("unhandled tool %q, passing through", in.ToolName)
	}
	return out, nil
}

func (a *claudeAdapter) FormatOutput(d types.Decision) ([]byte, error) {
	out := claudeOutput{Decision: "approve", Message: d.Context}
	if d.Blocked {
		out = claudeOutput{Decision: "block", Message: d.Message}
	}
	return json.Marshal(out)
}

func (a *claudeAdapter) FormatError(message string) []byte {
	b, _ := json.Marshal(claudeOutput{
		Decision: "block",
		Message:  "🚫 Hook error (fail-closed): " + message,
	})
	return b
}
