package cmdexec

import "strings"

// getDefaultShell returns the default shell for the system.
//
// This is the platform-specific fallback used when the SHELL environment
// variable is not set.
//
// Returns:
//   - shell: The path to the default shell executable
//   - args: The shell arguments needed to execute a command string
func getDefaultShell() (shell string, args []string) {
	return "sh", []string{"-c"}
}

// DoubleQuote wraps s in double quotes for a POSIX shell command line.
//
// Inside double quotes the shell still interprets backslash, dollar,
// backtick and the double quote itself, so those are backslash-escaped.
// Everything else, spaces and glob characters included, stays literal.
//
// Parameters:
//   - s: Value to quote
//
// Returns:
//   - string: The quoted value, e.g. `"< 1"` or `"say \"hi\""`
func DoubleQuote(s string) string {
	var quoted strings.Builder
	quoted.Grow(len(s) + 2)
	quoted.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			quoted.WriteByte('\\')
		}
		quoted.WriteRune(r)
	}
	quoted.WriteByte('"')
	return quoted.String()
}
