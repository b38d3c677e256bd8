package adapter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/owayo/claw-hooks/internal/types"
)

func TestClaudeAdapter_ParseInput(t *testing.T) {
	a := New(FormatClaude)

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, in *types.HookInput)
	}{
		{
			name:  "bash pre tool use",
			input: `{"hook_event_name":"PreToolUse","tool_name":"Bash","tool_input":{"command":"kill -9 1234","timeout":5000},"session_id":"abc"}`,
			check: func(t *testing.T, in *types.HookInput) {
				if in.Event != types.EventPreToolUse || in.ToolName != types.ToolBash {
					t.Errorf("event = %s/%s", in.Event, in.ToolName)
				}
				if in.Bash == nil || in.Bash.Command != "kill -9 1234" || in.Bash.Timeout != 5000 {
					t.Errorf("bash = %+v", in.Bash)
				}
				if in.SessionID != "abc" {
					t.Errorf("session = %q", in.SessionID)
				}
			},
		},
		{
			name:  "write post tool use",
			input: `{"hook_event_name":"PostToolUse","tool_name":"Write","tool_input":{"file_path":"main.go","content":"package main"}}`,
			check: func(t *testing.T, in *types.HookInput) {
				if in.Event != types.EventPostToolUse || in.File == nil || in.File.FilePath != "main.go" {
					t.Errorf("input = %+v", in)
				}
			},
		},
		{
			name:  "edit tool",
			input: `{"hook_event_name":"PreToolUse","tool_name":"Edit","tool_input":{"file_path":"x.py"}}`,
			check: func(t *testing.T, in *types.HookInput) {
				if in.ToolName != types.ToolEdit || in.File == nil {
					t.Errorf("input = %+v", in)
				}
			},
		},
		{
			name:  "stop event has no tool fields",
			input: `{"hook_event_name":"Stop","session_id":"abc"}`,
			check: func(t *testing.T, in *types.HookInput) {
				if in.Event != types.EventStop || in.ToolName != types.ToolStop || in.Stop == nil {
					t.Errorf("input = %+v", in)
				}
			},
		},
		{name: "empty object", input: `{}`, wantErr: true},
		{name: "missing tool name", input: `{"hook_event_name":"PreToolUse"}`, wantErr: true},
		{name: "missing tool input", input: `{"hook_event_name":"PreToolUse","tool_name":"Bash"}`, wantErr: true},
		{name: "not json", input: `kill -9 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := a.ParseInput([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, in)
			}
		})
	}
}

func TestClaudeAdapter_FormatOutput(t *testing.T) {
	a := New(FormatClaude)

	out, err := a.FormatOutput(types.Allow())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"decision":"approve"}` {
		t.Errorf("allow = %s", out)
	}

	out, err = a.FormatOutput(types.Block("nope"))
	if err != nil {
		t.Fatal(err)
	}
	var got claudeOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got.Decision != "block" || got.Message != "nope" {
		t.Errorf("block = %+v", got)
	}

	out, _ = a.FormatOutput(types.AllowWithContext("lint findings"))
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got.Decision != "approve" || got.Message != "lint findings" {
		t.Errorf("allow with context = %+v", got)
	}
}

func TestClaudeAdapter_FormatError(t *testing.T) {
	out := New(FormatClaude).FormatError("bad input")
	var got claudeOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got.Decision != "block" {
		t.Error("parse errors must block")
	}
	if !strings.Contains(got.Message, "fail-closed") || !strings.Contains(got.Message, "bad input") {
		t.Errorf("message = %q", got.Message)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"claude", "cursor", "windsurf"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("copilot"); err == nil {
		t.Error("want error for unknown format")
	}
}
