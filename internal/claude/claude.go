// Package claude provides shared constants and utilities for Claude Code
// invocation.
package claude

import (
	"strings"
)

// DefaultCommand is the agent executable looked up on PATH when the
// configuration does not name one.
const DefaultCommand = "claude"

// RequiredFlags are mandatory for unattended workspace runs:
// - -p: non-interactive prompt mode, exit when the turn completes
// - --dangerously-skip-permissions: prevents blocking on permission prompts;
//   safe here because the run is sandboxed to its own workspace directory
// - --permission-mode bypassPermissions: alternative way to skip permissions
var RequiredFlags = []string{
	"-p",
	"--dangerously-skip-permissions",
	"--permission-mode",
	"bypassPermissions",
}

// Argv returns the argument vector (excluding the command itself) for a
// headless run with the given prompt.
func Argv(prompt string) []string {
	args := make([]string, 0, len(RequiredFlags)+1)
	args = append(args, RequiredFlags...)
	args = append(args, prompt)
	return args
}

// FlagSet returns RequiredFlags as a space-separated string for display.
func FlagSet() string {
	return strings.Join(RequiredFlags, " ")
}

// ValidateArgs checks that all RequiredFlags are present in args.
// Returns nil if valid, or an error listing missing flags.
func ValidateArgs(args []string) error {
	present := make(map[string]bool, len(args))
	for _, a := range args {
		present[a] = true
	}

	var missing []string
	for _, required := range RequiredFlags {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ValidationError represents missing required flags.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required Claude flags: " + strings.Join(e.Missing, ", ")
}
