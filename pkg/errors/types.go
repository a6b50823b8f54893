package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the stage completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a deprecation or template failure.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// Stable codes carried by PluginError.
const (
	// CodeNoNpmToken means no credentials are available for the registry.
	CodeNoNpmToken = "ENONPMTOKEN"

	// CodeInvalidTemplate means a deprecation rule failed to render.
	CodeInvalidTemplate = "EINVALIDTEMPLATE"

	// CodeDeprecate means the npm deprecate command exited with an error.
	CodeDeprecate = "EDEPRECATE"

	// CodeInvalidConfig means the plugin configuration could not be used.
	CodeInvalidConfig = "EINVALIDCONFIG"

	// CodeInvalidContext means the release context could not be loaded.
	CodeInvalidContext = "EINVALIDCONTEXT"

	// CodeNoPackage means package.json is missing or unreadable.
	CodeNoPackage = "ENOPKG"

	// CodeNoPackageName means package.json has no name field.
	CodeNoPackageName = "ENOPKGNAME"

	// CodeNoNpm means the npm executable could not be found.
	CodeNoNpm = "ENONPM"
)

// configCodes lists the PluginError codes that map to ExitConfigError.
var configCodes = map[string]bool{
	CodeNoNpmToken:     true,
	CodeInvalidConfig:  true,
	CodeInvalidContext: true,
	CodeNoPackage:      true,
	CodeNoPackageName:  true,
	CodeNoNpm:          true,
}

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is a PluginError with a configuration code, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var pluginErr *PluginError
	if errors.As(err, &pluginErr) && configCodes[pluginErr.Code] {
		return ExitConfigError
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// PluginError is a lifecycle failure with a stable code.
//
// Codes are the E* constants above. Details carries a longer explanation
// meant for the person reading the release log.
//
// Fields:
//   - Code: Stable error code (e.g., ENONPMTOKEN)
//   - Message: Short description of the failure
//   - Details: Optional multi-line explanation
//   - Err: Underlying error, may be nil
type PluginError struct {
	Code    string
	Message string
	Details string
	Err     error
}

// Error implements the error interface.
//
// Returns:
//   - string: "<code>: <message>" followed by ": <cause>" when wrapping an error
func (e *PluginError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a PluginError with a formatted message.
//
// Parameters:
//   - code: One of the Code* constants
//   - err: Underlying error, may be nil
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *PluginError: New plugin error
//
// Example:
//
//	return errors.NewPluginError(errors.CodeDeprecate, err, "deprecating %s@%q", name, version)
func NewPluginError(code string, err error, format string, args ...any) *PluginError {
	return &PluginError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: DetailsForCode(code),
		Err:     err,
	}
}

// IsPluginError checks if err is a PluginError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *PluginError: The PluginError if err is one, nil otherwise
//   - bool: true if err is a PluginError
func IsPluginError(err error) (*PluginError, bool) {
	var pluginErr *PluginError
	if errors.As(err, &pluginErr) {
		return pluginErr, true
	}
	return nil, false
}

// HasCode reports whether err (or anything it wraps or joins) is a
// PluginError with the given code.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*PluginError); ok && pe.Code == code {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if HasCode(inner, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return HasCode(x.Unwrap(), code)
	}
	return false
}
