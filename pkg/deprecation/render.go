package deprecation

import (
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/template"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// Render renders the version and message templates of every rule.
//
// The first failing template aborts the whole render, so no rule is
// applied when any of them is broken.
//
// Parameters:
//   - rules: Rules with unrendered templates
//   - data: Template scope, normally release.Context.Bindings()
//
// Returns:
//   - []Rule: Rendered rules in the same order; inputs are not modified
//   - error: EINVALIDTEMPLATE PluginError naming the failing rule, also
//     returned when a version renders to an empty range
func Render(rules []Rule, data any) ([]Rule, error) {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		version, err := template.Render(rule.Version, data)
		if err != nil {
			return nil, errors.NewPluginError(errors.CodeInvalidTemplate, err, "deprecation #%d version", i+1)
		}
		if strings.TrimSpace(version) == "" {
			return nil, errors.NewPluginError(errors.CodeInvalidTemplate, nil,
				"deprecation #%d version %q renders empty and would match every version", i+1, rule.Version)
		}
		message, err := template.Render(rule.Message, data)
		if err != nil {
			return nil, errors.NewPluginError(errors.CodeInvalidTemplate, err, "deprecation #%d message", i+1)
		}

		out[i] = Rule{Version: version, Message: message}
		verbose.RuleRendered(i+1, rule.Version, version, message)
	}
	return out, nil
}

// Check validates every rule without rendering it.
//
// An empty version is rejected because npm applies it to every published
// version. Templates are parsed but not evaluated.
//
// Parameters:
//   - rules: Rules to check, from the config and package.json alike
//
// Returns:
//   - []error: EINVALIDCONFIG per empty version, EINVALIDTEMPLATE per broken template
func Check(rules []Rule) []error {
	var errs []error
	for i, rule := range rules {
		if strings.TrimSpace(rule.Version) == "" {
			errs = append(errs, errors.NewPluginError(errors.CodeInvalidConfig, nil, "deprecation #%d version must not be empty", i+1))
		} else if _, err := template.Parse(rule.Version); err != nil {
			errs = append(errs, errors.NewPluginError(errors.CodeInvalidTemplate, err, "deprecation #%d version", i+1))
		}
		if _, err := template.Parse(rule.Message); err != nil {
			errs = append(errs, errors.NewPluginError(errors.CodeInvalidTemplate, err, "deprecation #%d message", i+1))
		}
	}
	return errs
}
