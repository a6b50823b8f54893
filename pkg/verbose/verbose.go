// Package verbose provides debug logging for semrel-npm-deprecate.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// CommandExec logs command execution details if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the command being executed
//   - Prints the working directory where the command will run
//
// Parameters:
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
func CommandExec(cmd, workDir string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
	if workDir != "" {
		_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
	}
}

// CommandResult logs command execution results if enabled.
//
// Long command strings are truncated to 60 characters for readability.
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
func CommandResult(cmd string, exitCode int) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The file path of the configuration that was loaded
//   - rules: Number of deprecation rules it declared
func ConfigLoaded(path string, rules int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Config loaded: %s (%d deprecation rule(s))\n", path, rules)
	}
}

// RulesCollected logs the result of merging config and manifest rules if enabled.
//
// Parameters:
//   - fromConfig: Number of rules declared in the plugin configuration
//   - fromManifest: Number of rules declared in package.json
func RulesCollected(fromConfig, fromManifest int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Deprecations collected: %d from config, %d from package.json\n", fromConfig, fromManifest)
	}
}

// RuleRendered logs a rendered deprecation rule if enabled.
//
// Nothing is printed for the template side when it rendered to itself.
//
// Parameters:
//   - index: Position of the rule in the effective list
//   - rawVersion: The version selector before rendering
//   - version: The version selector after rendering
//   - message: The message after rendering
func RuleRendered(index int, rawVersion, version, message string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	if rawVersion != version {
		_, _ = fmt.Fprintf(w, "[DEBUG] Rule #%d: %q → %q\n", index, rawVersion, version)
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Rule #%d: %q\n", index, version)
	}
	lines := strings.Split(message, "\n")
	_, _ = fmt.Fprintf(w, "        Message: %s\n", truncate(lines[0], 100))
}

// truncate shortens a string to the specified maximum length.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
