package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/owayo/claw-hooks/internal/adapter"
	"github.com/owayo/claw-hooks/internal/completion"
	"github.com/owayo/claw-hooks/internal/config"
	"github.com/owayo/claw-hooks/internal/filters"
	"github.com/owayo/claw-hooks/internal/logger"
)

// Version is set at build time via ldflags: -X main.Version=x.y.z
var Version = "1.0.0"

func main() {
	// Shell completion requests (COMP_LINE set) are handled before
	// anything else so they stay fast and silent.
	if completion.Run() {
		return
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "hook", "run":
			runHook(os.Args[2:])
			return
		case "init":
			runInit(os.Args[2:])
			return
		case "check":
			runCheck(os.Args[2:])
			return
		case "completion":
			runCompletion(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			return
		case "version", "-v", "--version":
			fmt.Printf("claw-hooks version %s\n", Version)
			return
		}
	}

	// No subcommand - show help
	printUsage()
}

// runHook handles the hook subcommand: read one event from stdin, write
// one decision to stdout, exit 0 on allow and 2 on block.
func runHook(args []string) {
	hookFlags := flag.NewFlagSet("hook", flag.ExitOnError)
	formatName := hookFlags.String("format", "claude", "Agent wire format: claude, cursor, windsurf")
	configPath := hookFlags.String("config", "", "Path to configuration file")
	debug := hookFlags.Bool("debug", false, "Enable debug logging")
	if err := hookFlags.Parse(args); err != nil {
		os.Exit(1)
	}

	format, err := adapter.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(resolveConfigPath(*configPath, env))
	env.Apply(cfg)

	logger.SetGlobalLevelFromString(string(cfg.Log.Level))
	if *debug {
		logger.SetGlobalLevelFromString("debug")
	}
	logger.SetColored(!cfg.Log.NoColor)
	if cfg.Log.File != "" {
		if f, err := logger.OpenLogFile(cfg.Log.File); err == nil {
			defer f.Close()
		}
	}

	chain := filters.NewChain(cfg, nil)
	if env.Disable {
		chain = filters.NewEmptyChain()
	}

	svc := adapter.NewService(chain, format)
	os.Exit(svc.Run(os.Stdin, os.Stdout))
}

// runInit writes a commented default config file.
func runInit(args []string) {
	initFlags := flag.NewFlagSet("init", flag.ExitOnError)
	path := initFlags.String("path", config.DefaultConfigPath(), "Where to write the config file")
	force := initFlags.Bool("force", false, "Overwrite an existing config file")
	if err := initFlags.Parse(args); err != nil {
		os.Exit(1)
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use -force to overwrite)\n", *path)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*path, []byte(defaultConfigTemplate), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *path)
}

// runCheck validates the configuration and reports every problem found.
func runCheck(args []string) {
	checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := checkFlags.String("config", "", "Path to configuration file")
	if err := checkFlags.Parse(args); err != nil {
		os.Exit(1)
	}

	env, _ := config.LoadEnv()
	path := resolveConfigPath(*configPath, env)
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration problems in %s:\n%v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%s: configuration OK (%d custom filter(s), %d extension hook(s), %d stop hook(s))\n",
		path, len(cfg.CustomFilters), len(cfg.ExtensionHooks), len(cfg.StopHooks))
}

// runCompletion handles the completion subcommand
func runCompletion(args []string) {
	compFlags := flag.NewFlagSet("completion", flag.ExitOnError)
	installFlag := compFlags.Bool("install", false, "Install shell completion")
	uninstallFlag := compFlags.Bool("uninstall", false, "Uninstall shell completion")
	if err := compFlags.Parse(args); err != nil {
		os.Exit(1)
	}

	switch {
	case *installFlag:
		if completion.IsInstalled() {
			fmt.Println("Shell completion is already installed")
			return
		}
		if err := completion.Install(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shell completion installed (restart your shell to activate)")
	case *uninstallFlag:
		if err := completion.Uninstall(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shell completion uninstalled")
	default:
		fmt.Println("Usage: claw-hooks completion -install | -uninstall")
	}
}

// resolveConfigPath picks the config file: env override first, then the
// CLI flag, then the default location.
func resolveConfigPath(flagPath string, env config.Env) string {
	if env.Config != "" {
		return env.Config
	}
	if flagPath != "" {
		return flagPath
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the config, falling back to defaults on error. A
// hook invocation must never die on a broken config file: the built-in
// safety filters stay active with their defaults.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func printUsage() {
	fmt.Println(`claw-hooks - Safety gate for AI coding agent hooks

Usage:
  claw-hooks hook [flags]       Process one hook event from stdin (alias: run)
  claw-hooks init [flags]       Write a commented default config file
  claw-hooks check [flags]      Validate the configuration
  claw-hooks completion [flags] Install or remove shell completion
  claw-hooks help               Show this help message
  claw-hooks version            Show version

Hook Flags:
  -format string   Agent wire format: claude, cursor, windsurf (default "claude")
  -config string   Path to configuration file (default ~/.config/claw-hooks/config.yaml)
  -debug           Enable debug logging

Init Flags:
  -path string     Where to write the config file
  -force           Overwrite an existing config file

Environment Variables:
  CLAW_HOOKS_CONFIG      Config file path (overrides -config)
  CLAW_HOOKS_LOG_LEVEL   Log level: trace, debug, info, warn, error
  CLAW_HOOKS_NO_COLOR    Disable colored log output
  CLAW_HOOKS_DISABLE     Disable all filters (kill switch; parse errors still block)

Exit Codes:
  0   Event allowed
  2   Event blocked (or fail-closed on malformed input)

Examples:
  echo '{"hook_event_name":"PreToolUse","tool_name":"Bash","tool_input":{"command":"ls"}}' | claw-hooks hook
  claw-hooks hook -format cursor
  claw-hooks init && claw-hooks check`)
}

const defaultConfigTemplate = `# claw-hooks configuration
#
# Register the binary as a hook in your agent (Claude Code, Cursor or
# Windsurf) and it gates shell commands, runs per-extension hooks on
# file edits, and runs stop hooks when the session ends.

filters:
  # Block kill/pkill/killall/taskkill.
  kill:
    enabled: true
    # message: "custom block message"

  # Block dd.
  dd:
    enabled: true

  # Block rm/rmdir/del/erase.
  rm:
    enabled: true

# User-defined command filters.
# Pattern mode: command is a regex matched against each shell command.
# Argument mode: add args to also require the first argument to match.
#
# custom_filters:
#   - command: "yarn"
#     message: "Use pnpm instead of yarn"
#   - command: "npm"
#     args: ["install", "i", "add"]
#     message: "Use pnpm for dependency management"

# Commands run when a file with the extension is written or edited.
# {file} is replaced with the file path. Output is reported back to the
# agent as context on post-edit events. These hooks never block.
#
# extension_hooks:
#   ".go":
#     commands:
#       - "gofmt -w {file}"
#     exclude:
#       - "vendor/**"
#   ".py":
#     - "ruff check {file}"

# Commands run when the agent session ends.
#
# stop_hooks:
#   - "notify-send 'agent session finished'"

log:
  level: info
  # no_color: true
  # file: ~/.config/claw-hooks/logs/claw-hooks.log
`
