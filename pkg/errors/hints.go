package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when a required command is not found.
var CommandResolutionHints = map[string]string{
	"npm":  "Install Node.js: https://nodejs.org/",
	"node": "Install Node.js: https://nodejs.org/",
	"sh":   "Unix tool - typically pre-installed on Linux/macOS",
}

// codeDetails holds the long explanation attached to each PluginError code.
var codeDetails = map[string]string{
	CodeNoNpmToken: "An npm token must be created and set in the `NPM_TOKEN` environment variable on your CI environment.\n" +
		"Alternatively `NPM_USERNAME`, `NPM_PASSWORD` and `NPM_EMAIL` can be set together for legacy authentication.",
	CodeInvalidTemplate: "Deprecation `version` and `message` are templates. Only field lookups such as `${nextRelease.version}` " +
		"and the string helpers split, trim, toUpperCase, toLowerCase, replace, slice, startsWith, endsWith and includes are supported.",
	CodeDeprecate:      "The `npm deprecate` command failed. Check that the token has publish rights on the package and that the version range matches published versions.",
	CodeInvalidConfig:  "The `deprecations` option must be a list of objects with a non-empty `version` and a `message`.",
	CodeInvalidContext: "The release context file must be a JSON object as provided by the release tool (nextRelease, lastRelease, branch, env, cwd).",
	CodeNoPackage:      "A `package.json` file must exist at the root of the project or in `pkgRoot`.",
	CodeNoPackageName:  "The `package.json` must have a `name` field.",
	CodeNoNpm:          "The `npm` command must be installed and available in PATH.",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by GetHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    CodeNoNpmToken,
		Hint:       "No npm credentials",
		Resolution: "Set NPM_TOKEN, or set skipAuth when the job already has an authenticated npm config",
	},
	{
		Pattern:    "E401",
		Hint:       "Authentication required",
		Resolution: "Check that NPM_TOKEN is valid for the registry",
	},
	{
		Pattern:    "E403",
		Hint:       "Access forbidden",
		Resolution: "The token needs publish rights on the package to deprecate versions",
	},
	{
		Pattern:    "E404",
		Hint:       "Package or version not found",
		Resolution: "Verify the package name and that the version range matches published versions",
	},
	{
		Pattern:    "ENOTFOUND",
		Hint:       "DNS resolution failed",
		Resolution: "Check network connectivity and the configured registry URL",
	},
	{
		Pattern:    "ECONNREFUSED",
		Hint:       "Connection refused by server",
		Resolution: "Check if the registry is accessible and not blocked",
	},
	{
		Pattern:    "executable file not found",
		Hint:       "Command not found",
		Resolution: "Install Node.js (https://nodejs.org/) so that npm is on PATH",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "npm")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// DetailsForCode returns the long explanation for a PluginError code.
func DetailsForCode(code string) string {
	return codeDetails[code]
}
