// Package errors provides unified error types and display for semrel-npm-deprecate.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - PluginError: A lifecycle failure identified by a stable error code
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if pe, ok := errors.IsPluginError(err); ok && pe.Code == errors.CodeNoNpmToken {
//	    ...
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All deprecations were applied (or there were none)
//   - ExitFailure (2): A deprecation, template or command failed
//   - ExitConfigError (3): Configuration, manifest or authentication error
package errors
