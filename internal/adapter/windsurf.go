package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/owayo/claw-hooks/internal/types"
)

// windsurfInput is the Cascade hook payload.
type windsurfInput struct {
	AgentActionName string `json:"agent_action_name"`
	ToolInfo        struct {
		CommandLine string `json:"command_line"`
		Cwd         string `json:"cwd"`
		FilePath    string `json:"file_path"`
		Response    string `json:"response"`
	} `json:"tool_info"`
}

type windsurfAdapter struct{}

func (a *windsurfAdapter) ParseInput(data []byte) (*types.HookInput, error) {
	var in windsurfInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse windsurf input: %w", err)
	}
	if in.AgentActionName == "" {
		return nil, fmt.Errorf("missing agent_action_name field")
	}

	switch in.AgentActionName {
	case "pre_run_command":
		return &types.HookInput{
			Event:    types.EventPreToolUse,
			ToolName: types.ToolBash,
			Bash:     &types.BashInput{Command: in.ToolInfo.CommandLine},
		}, nil
	case "post_write_code":
		return &types.HookInput{
			Event:    types.EventPostToolUse,
			ToolName: types.ToolWrite,
			File:     &types.FileInput{FilePath: in.ToolInfo.FilePath},
		}, nil
	case "post_cascade_response":
		return &types.HookInput{
			Event:    types.EventStop,
			ToolName: types.ToolStop,
			Stop:     &types.StopInput{Response: in.ToolInfo.Response},
		}, nil
	}

	// Unknown actions pass through: no filter applies, decision is allow.
	adpLog.Debug("unknown windsurf action %q, passing through", in.AgentActionName)
	return &types.HookInput{Event: types.Event(in.AgentActionName)}, nil
}

// Windsurf consumes the same output shape as Claude Code.
func (a *windsurfAdapter) FormatOutput(d types.Decision) ([]byte, error) {
	return (&claudeAdapter{}).FormatOutput(d)
}

func (a *windsurfAdapter) FormatError(message string) []byte {
	return (&claudeAdapter{}).FormatError(message)
}
