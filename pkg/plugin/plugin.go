package plugin

import (
	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/manifest"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/preflight"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// GetPackageFunc reads the package manifest from a directory.
type GetPackageFunc func(dir string) (*manifest.Package, error)

// DeprecateFunc applies one rendered rule.
type DeprecateFunc func(rule deprecation.Rule, name string, auth *deprecation.Auth, rc *release.Context) error

// GetPackage, Deprecate and ValidateCommands are the external operations of
// the lifecycle steps. They can be replaced for testing.
var (
	GetPackage       GetPackageFunc = manifest.Read
	Deprecate        DeprecateFunc  = deprecate
	ValidateCommands                = preflight.ValidateCommands
)

func deprecate(rule deprecation.Rule, name string, auth *deprecation.Auth, rc *release.Context) error {
	return deprecation.NewInvoker(rc).Deprecate(rule, name, auth)
}

// collected is the outcome of reading the manifest and merging rules.
type collected struct {
	pkg        *manifest.Package
	rules      []deprecation.Rule
	fromConfig int
}

// collect reads the manifest once and merges config and manifest rules.
func collect(cfg *config.PluginConfig, rc *release.Context) (*collected, error) {
	pkg, err := GetPackage(cfg.PackageDir(rc.Cwd))
	if err != nil {
		return nil, err
	}

	rules := deprecation.Collect(cfg.Rules(), pkg.Deprecations)
	verbose.RulesCollected(len(cfg.Rules()), len(pkg.Deprecations))
	return &collected{pkg: pkg, rules: rules, fromConfig: len(cfg.Rules())}, nil
}

// source names where the rule at index i came from.
func (c *collected) source(i int) string {
	if i < c.fromConfig {
		return "config"
	}
	return "package.json"
}
