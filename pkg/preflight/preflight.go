// Package preflight checks that the external commands the plugin shells out
// to are available before any deprecation is attempted.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// ValidationError represents a missing command with resolution hints.
//
// Fields:
//   - Command: The name of the missing command
//   - Hint: Installation instructions (empty if no hint available)
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns a formatted error message with resolution instructions.
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command, e.Command)
}

// ValidateResult holds the result of pre-flight validation.
//
// Fields:
//   - Errors: List of validation errors for missing commands
type ValidateResult struct {
	Errors []ValidationError
}

// HasErrors returns true if there are validation errors.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage returns a formatted message listing every missing command.
//
// Returns:
//   - string: Multi-line message, or empty string if there are no errors
func (r *ValidateResult) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// lookPath and commandExistsInShell are swapped in tests.
var (
	lookPath             = exec.LookPath
	commandExistsInShell = shellHasCommand
)

// ValidateCommands checks that every command is resolvable.
//
// Duplicate names are checked once. Each name is first looked up in PATH and
// then, to support wrappers such as nvm shims, through the user's shell.
//
// Parameters:
//   - commands: Command names, e.g. "npm"
//
// Returns:
//   - *ValidateResult: One ValidationError per missing command
func ValidateCommands(commands ...string) *ValidateResult {
	result := &ValidateResult{}
	checked := make(map[string]bool)

	for _, cmd := range commands {
		if cmd == "" || checked[cmd] {
			continue
		}
		checked[cmd] = true
		if err := validateCommand(cmd); err != nil {
			result.Errors = append(result.Errors, *err)
		}
	}

	verbose.Printf("Preflight: %d command(s) checked, %d missing", len(checked), len(result.Errors))
	return result
}

// CommandOf returns the executable name of a shell command line.
//
// Parameters:
//   - commandLine: A command such as `npm deprecate pkg@"< 1" "msg"`
//
// Returns:
//   - string: The first word ("npm"), or empty string for a blank line
func CommandOf(commandLine string) string {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func validateCommand(cmd string) *ValidationError {
	if _, err := lookPath(cmd); err == nil {
		verbose.Printf("Preflight: command %q found in PATH", cmd)
		return nil
	}

	if commandExistsInShell(cmd) {
		verbose.Printf("Preflight: command %q found as shell alias/function", cmd)
		return nil
	}

	hint := errors.GetHintForCommand(cmd)
	verbose.Printf("Preflight ERROR: command %q not found", cmd)
	return &ValidationError{
		Command: cmd,
		Hint:    hint,
	}
}

func shellHasCommand(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	return exec.Command(shell, args...).Run() == nil
}
