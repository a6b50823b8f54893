package preflight

import (
	"os"
)

// getShellCommandCheck returns the shell and args for checking if a command exists.
//
// The 'command -v' built-in detects executables, aliases, shell functions
// and built-ins. The name is passed as a positional parameter so it is never
// interpreted by the shell.
//
// Parameters:
//   - cmd: The command name to check for existence
//
// Returns:
//   - shell: The shell executable to use (from $SHELL env var or "sh" as fallback)
//   - args: Command arguments for checking command existence using 'command -v'
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-c", `command -v "$1"`, "preflight", cmd}
}
