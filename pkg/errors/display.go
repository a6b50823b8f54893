package errors

import (
	"fmt"
	"io"
	"strings"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// This is the single implementation for error display across all commands.
// Joined errors (errors.Join) are expanded so every failure gets its own entry.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, includes the long details of plugin errors
//
// Output format:
//
//	Error: <error message>
//	  Hint: <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			PrintErrorWithHints(w, joined.Unwrap(), verbose)
			continue
		}
		printSingleError(w, err, verbose)
	}
}

// printSingleError prints a single error with appropriate formatting.
//
// Parameters:
//   - w: Writer to output to
//   - err: The error to print
//   - verbose: If true, includes detailed information
func printSingleError(w io.Writer, err error, verbose bool) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)

	if pe, ok := IsPluginError(err); ok && verbose && pe.Details != "" {
		for _, line := range strings.Split(pe.Details, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}

	if hint := GetHint(err); hint != "" {
		_, _ = fmt.Fprintf(w, "  Hint: %s\n", hint)
	}
}
