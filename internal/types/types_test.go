package types

import "testing"

func TestEventValid(t *testing.T) {
	for _, e := range []Event{EventPreToolUse, EventPostToolUse, EventStop} {
		if !e.Valid() {
			t.Errorf("%s should be valid", e)
		}
	}
	if Event("Notification").Valid() {
		t.Error("unknown event should be invalid")
	}
}

func TestIsFileTool(t *testing.T) {
	for _, name := range []string{ToolWrite, ToolEdit, ToolMultiEdit} {
		if !IsFileTool(name) {
			t.Errorf("%s should be a file tool", name)
		}
	}
	if IsFileTool(ToolBash) || IsFileTool(ToolStop) {
		t.Error("Bash and Stop are not file tools")
	}
}

func TestDecision(t *testing.T) {
	if d := Allow(); d.Blocked || d.ExitCode() != 0 || d.Context != "" {
		t.Errorf("Allow() = %+v", d)
	}
	if d := AllowWithContext("lint"); d.Blocked || d.Context != "lint" || d.ExitCode() != 0 {
		t.Errorf("AllowWithContext = %+v", d)
	}
	if d := Block("no"); !d.Blocked || d.Message != "no" || d.ExitCode() != 2 {
		t.Errorf("Block = %+v", d)
	}
}

func TestLogLevelValid(t *testing.T) {
	for _, l := range []LogLevel{"", "trace", "debug", "info", "warn", "error", "INFO"} {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if LogLevel("loud").Valid() {
		t.Error("unknown level should be invalid")
	}
}
