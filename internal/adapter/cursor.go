package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/owayo/claw-hooks/internal/types"
)

// cursorInput covers Cursor's three hook payloads in one shape. Cursor
// sends no event discriminator, so the hook kind is inferred from which
// fields are present: command means beforeShellExecution, a file path
// means afterFileEdit, status means the stop hook.
type cursorInput struct {
	Command       string `json:"command"`
	Cwd           string `json:"cwd"`
	FilePath      string `json:"file_path"`
	FilePathCamel string `json:"filePath"`
	Status        string `json:"status"`
	LoopCount     int    `json:"loop_count"`
}

type cursorOutput struct {
	Permission   string `json:"permission"`
	UserMessage  string `json:"user_message,omitempty"`
	AgentMessage string `json:"agent_message,omitempty"`
}

type cursorAdapter struct{}

func (a *cursorAdapter) ParseInput(data []byte) (*types.HookInput, error) {
	var in cursorInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse cursor input: %w", err)
	}

	switch {
	case in.Command != "":
		return &types.HookInput{
			Event:    types.EventPreToolUse,
			ToolName: types.ToolBash,
			Bash:     &types.BashInput{Command: in.Command},
		}, nil
	case in.FilePath != "" || in.FilePathCamel != "":
		path := in.FilePath
		if path == "" {
			path = in.FilePathCamel
		}
		return &types.HookInput{
			Event:    types.EventPostToolUse,
			ToolName: types.ToolWrite,
			File:     &types.FileInput{FilePath: path},
		}, nil
	case in.Status != "":
		return &types.HookInput{
			Event:    types.EventStop,
			ToolName: types.ToolStop,
			Stop:     &types.StopInput{Status: in.Status, LoopCount: in.LoopCount},
		}, nil
	}
	return nil, fmt.Errorf("unrecognized cursor payload")
}

func (a *cursorAdapter) FormatOutput(d types.Decision) ([]byte, error) {
	if d.Blocked {
		return json.Marshal(cursorOutput{
			Permission:   "deny",
			UserMessage:  d.Message,
			AgentMessage: "Command blocked by claw-hooks",
		})
	}
	return json.Marshal(cursorOutput{Permission: "allow", UserMessage: d.Context})
}

func (a *cursorAdapter) FormatError(message string) []byte {
	b, _ := json.Marshal(cursorOutput{
		Permission:   "deny",
		UserMessage:  "🚫 Hook error (fail-closed): " + message,
		AgentMessage: "Hook system encountered an error and blocked for safety",
	})
	return b
}
