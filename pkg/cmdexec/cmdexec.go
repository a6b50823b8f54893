// Package cmdexec runs external commands for semrel-npm-deprecate.
// Commands are executed synchronously through the user's shell with the
// caller's standard streams inherited, mirroring how release tools run
// their helper CLIs.
package cmdexec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// Options configures a single command run.
//
// Fields:
//   - Dir: Working directory; empty means the current directory
//   - Env: Variables layered on top of the process environment
//   - Stdin, Stdout, Stderr: Streams; nil means inherit from this process
type Options struct {
	Dir    string
	Env    map[string]string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunFunc is the function signature for command execution.
//
// Parameters:
//   - command: Shell command line to execute
//   - opts: Working directory, environment and stream configuration
//
// Returns:
//   - error: nil when the command exits with status 0; otherwise the
//     failure, with the exit status available through ExitCode
type RunFunc func(command string, opts Options) error

// Run is the default command execution function.
//
// This variable holds the implementation used for command execution throughout
// the application. It can be replaced with a mock implementation for testing.
var Run RunFunc = runCommand

// getShell returns the user's shell and args to run a command.
//
// The SHELL environment variable is honoured so the same shell the release
// job uses resolves npm. Falls back to the platform default when unset.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-c"}
	}
	return getDefaultShell()
}

// runCommand executes a command line through the user's shell and blocks
// until it exits.
//
// It performs the following operations:
//   - Rejects empty command lines
//   - Builds the environment from the process environment plus opts.Env
//   - Wires the standard streams (inherited unless overridden)
//   - Runs the command and reports the exit status
//
// Parameters:
//   - command: Shell command line to execute
//   - opts: Working directory, environment and stream configuration
//
// Returns:
//   - error: nil on exit status 0, otherwise the wrapped *exec.ExitError or start error
func runCommand(command string, opts Options) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("empty command")
	}

	shell, shellArgs := getShell()
	args := append(shellArgs, command)

	cmd := exec.Command(shell, args...)
	cmd.Env = buildEnv(os.Environ(), opts.Env)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	cmd.Stdin = opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	verbose.CommandExec(command, opts.Dir)
	err := cmd.Run()
	verbose.CommandResult(command, ExitCode(err))
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// buildEnv layers overrides on top of a KEY=VALUE environment list.
//
// Keys from overrides replace matching keys from base; new keys are appended
// in sorted order so the resulting environment is deterministic.
//
// Parameters:
//   - base: Environment in os.Environ() form
//   - overrides: Variables to set
//
// Returns:
//   - []string: Combined environment in os.Environ() form
func buildEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	environ := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, replaced := overrides[key]; replaced {
			continue
		}
		environ = append(environ, kv)
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		environ = append(environ, key+"="+overrides[key])
	}
	return environ
}

// ExitCode extracts the process exit status from an error returned by Run.
//
// Returns 0 for nil, the exit status for *exec.ExitError, and -1 for any
// other failure (for example the shell could not be started).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
