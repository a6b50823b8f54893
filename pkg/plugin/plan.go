package plugin

import (
	"path/filepath"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/registry"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
)

// PlannedUserConfig stands in for the temporary credentials file in plans.
var PlannedUserConfig = filepath.Join("$TMPDIR", constants.NpmrcFile)

// Step is one planned deprecation.
//
// Fields:
//   - Source: "config" or "package.json"
//   - Template: Rule as written
//   - Rule: Rule after rendering
//   - Command: npm command Success would run
type Step struct {
	Source   string           `json:"source"`
	Template deprecation.Rule `json:"template"`
	Rule     deprecation.Rule `json:"rule"`
	Command  string           `json:"command"`
}

// Plan is what Success would do for a release.
type Plan struct {
	Package  string `json:"package"`
	Registry string `json:"registry,omitempty"`
	Auth     bool   `json:"auth"`
	Steps    []Step `json:"steps"`
}

// BuildPlan computes the deprecations Success would apply, without
// writing credentials or running npm.
//
// Parameters:
//   - cfg: Plugin options; nil means no options
//   - rc: Release context
//
// Returns:
//   - *Plan: Planned steps, empty when there is nothing to deprecate
//   - error: Manifest or template error
func BuildPlan(cfg *config.PluginConfig, rc *release.Context) (*Plan, error) {
	c, err := collect(cfg, rc)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Package: c.pkg.Name, Auth: cfg.UsesAuth(), Steps: []Step{}}
	if len(c.rules) == 0 {
		return plan, nil
	}

	rules, err := deprecation.Render(c.rules, rc.Bindings())
	if err != nil {
		return nil, err
	}

	var auth *deprecation.Auth
	if plan.Auth {
		npmEnv, err := config.LoadNpmEnv(rc.Env)
		if err != nil {
			return nil, err
		}
		rcfg := registry.LoadNpmrc(rc.Cwd, npmEnv, rc.Env)
		plan.Registry = registry.Resolve(c.pkg, npmEnv, rcfg)
		auth = &deprecation.Auth{UserConfig: PlannedUserConfig, Registry: plan.Registry}
	}

	for i, rule := range rules {
		plan.Steps = append(plan.Steps, Step{
			Source:   c.source(i),
			Template: c.rules[i],
			Rule:     rule,
			Command:  deprecation.Command(rule, c.pkg.Name, auth),
		})
	}
	return plan, nil
}
