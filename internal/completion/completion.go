// Package completion provides CLI tab-completion for claw-hooks.
//
// The binary itself handles completions: when invoked with COMP_LINE set
// (by the shell), it outputs matching completions and exits.
// Works across bash, zsh, and fish with a one-time install.
package completion

import (
	"os"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/install"
	"github.com/posener/complete/v2/predict"
)

// command defines the full claw-hooks CLI completion tree.
var command = &complete.Command{
	Sub: map[string]*complete.Command{
		"hook": {
			Flags: map[string]complete.Predictor{
				"format": predict.Set{"claude", "cursor", "windsurf"},
				"config": predict.Files("*.yaml"),
				"debug":  predict.Nothing,
			},
		},
		"run": {
			Flags: map[string]complete.Predictor{
				"format": predict.Set{"claude", "cursor", "windsurf"},
				"config": predict.Files("*.yaml"),
				"debug":  predict.Nothing,
			},
		},
		"init": {
			Flags: map[string]complete.Predictor{
				"path":  predict.Files("*.yaml"),
				"force": predict.Nothing,
			},
		},
		"check": {
			Flags: map[string]complete.Predictor{
				"config": predict.Files("*.yaml"),
			},
		},
		"version":    {},
		"help":       {},
		"completion": {Flags: map[string]complete.Predictor{"install": predict.Nothing, "uninstall": predict.Nothing}},
	},
}

// Run checks if the binary was invoked for shell completion.
// If COMP_LINE is set, it outputs completions and exits (never returns).
// Otherwise it returns false and the program continues normally.
func Run() bool {
	if os.Getenv("COMP_LINE") != "" || os.Getenv("COMP_INSTALL") != "" || os.Getenv("COMP_UNINSTALL") != "" {
		command.Complete("claw-hooks")
		return true
	}
	return false
}

// Install sets up shell completion for the detected shells.
func Install() error {
	return install.Install("claw-hooks")
}

// Uninstall removes shell completion for the detected shells.
func Uninstall() error {
	return install.Uninstall("claw-hooks")
}

// IsInstalled reports whether shell completion is already set up.
func IsInstalled() bool {
	return install.IsInstalled("claw-hooks")
}
