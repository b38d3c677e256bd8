package filters

import "os/exec"

// CommandRunner executes a side-effect command and returns its combined
// stdout and stderr. Tests substitute a fake to avoid spawning processes.
type CommandRunner func(name string, args ...string) ([]byte, error)

// DefaultRunner spawns the command directly, never through a shell.
func DefaultRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}
