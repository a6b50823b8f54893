package deprecation

import "fmt"

// Rule marks every published version matching Version as deprecated with Message.
//
// Both fields are templates until rendered. An empty Message asks npm to
// remove an existing deprecation.
//
// Fields:
//   - Version: npm version range, e.g. "< ${nextRelease.version.split('.')[0]}"
//   - Message: Deprecation message shown by npm install
type Rule struct {
	Version string `json:"version" yaml:"version"`
	Message string `json:"message" yaml:"message"`
}

// String returns the rule in `version: message` form for logs.
func (r Rule) String() string {
	return fmt.Sprintf("%s: %q", r.Version, r.Message)
}

// Collect returns the effective rule list: configRules followed by manifestRules.
//
// Rules are neither deduplicated nor reordered, and the result never shares
// a backing array with either input. An empty result means there is nothing
// to deprecate.
//
// Parameters:
//   - configRules: Rules from the plugin configuration, may be nil
//   - manifestRules: Rules from the package manifest, may be nil
//
// Returns:
//   - []Rule: New slice of length len(configRules)+len(manifestRules)
func Collect(configRules, manifestRules []Rule) []Rule {
	out := make([]Rule, 0, len(configRules)+len(manifestRules))
	out = append(out, configRules...)
	return append(out, manifestRules...)
}
