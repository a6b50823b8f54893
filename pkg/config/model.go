// Package config loads the plugin options for semrel-npm-deprecate.
//
// Options come from a dedicated file, from the plugin entry of a release
// configuration (.releaserc in YAML or JSON), or from the "release" key of
// package.json. The npm authentication environment is decoded separately by
// LoadNpmEnv.
package config

import (
	"path/filepath"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
)

// PluginConfig holds the plugin options.
//
// Fields:
//   - Deprecations: Rules declared in the release configuration
//   - SkipAuth: Run npm without writing credentials; rely on the ambient npm config
//   - PkgRoot: Directory, relative to the working directory, holding package.json
//   - Source: File the options were read from; empty when none was found
type PluginConfig struct {
	Deprecations []deprecation.Rule `yaml:"deprecations,omitempty" json:"deprecations,omitempty"`
	SkipAuth     bool               `yaml:"skipAuth,omitempty" json:"skipAuth,omitempty"`
	PkgRoot      string             `yaml:"pkgRoot,omitempty" json:"pkgRoot,omitempty"`
	Source       string             `yaml:"-" json:"-"`
}

// Rules returns the configured rules; nil-safe.
func (c *PluginConfig) Rules() []deprecation.Rule {
	if c == nil {
		return nil
	}
	return c.Deprecations
}

// PackageDir returns the directory holding package.json.
//
// Parameters:
//   - cwd: Release working directory
//
// Returns:
//   - string: cwd joined with PkgRoot, or cwd when PkgRoot is empty or c is nil
func (c *PluginConfig) PackageDir(cwd string) string {
	if c == nil || c.PkgRoot == "" {
		return cwd
	}
	if filepath.IsAbs(c.PkgRoot) {
		return c.PkgRoot
	}
	return filepath.Join(cwd, c.PkgRoot)
}

// UsesAuth reports whether credentials should be written before deprecating.
func (c *PluginConfig) UsesAuth() bool {
	return c == nil || !c.SkipAuth
}
