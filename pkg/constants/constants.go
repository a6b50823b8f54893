// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for names and defaults.
package constants

// Plugin identity.
const (
	// PluginName is the name reported in logs and matched in release config plugin lists.
	PluginName = "semrel-npm-deprecate"

	// PluginSuffix identifies this plugin's entry in a release config `plugins` list.
	PluginSuffix = "npm-deprecate"

	// EnvPrefix is the prefix for environment variables bound to CLI flags.
	EnvPrefix = "SEMREL_NPM_DEPRECATE"
)

// npm defaults.
const (
	// DefaultRegistry is used when no registry is configured anywhere.
	DefaultRegistry = "https://registry.npmjs.org/"

	// NpmCommand is the executable that performs deprecations.
	NpmCommand = "npm"

	// ManifestFile is the npm package manifest name.
	ManifestFile = "package.json"

	// NpmrcFile is the npm config file name.
	NpmrcFile = ".npmrc"
)

// Deprecation status values shown by the plan and success output.
const (
	// StatusPlanned indicates the deprecation will run (or would run in dry-run mode).
	StatusPlanned = "Planned"

	// StatusDeprecated indicates npm accepted the deprecation.
	StatusDeprecated = "Deprecated"

	// StatusUndeprecated indicates an empty message cleared an existing deprecation.
	StatusUndeprecated = "Undeprecated"

	// StatusFailed indicates the npm command failed.
	StatusFailed = "Failed"
)

// Icon constants for status display.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconInfo indicates informational or neutral state (blue circle).
	IconInfo = "🔵"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"

	// PlaceholderEmpty is shown for an empty deprecation message.
	PlaceholderEmpty = "(empty)"
)

// StatusIcon returns the display icon for a deprecation status.
//
// Parameters:
//   - status: One of the Status* constants
//
// Returns:
//   - string: Icon for the status, IconInfo for unknown values
func StatusIcon(status string) string {
	switch status {
	case StatusDeprecated, StatusUndeprecated:
		return IconSuccess
	case StatusPlanned:
		return IconWarning
	case StatusFailed:
		return IconError
	default:
		return IconInfo
	}
}
