package registry

import (
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/manifest"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// Resolve returns the registry URL for pkg.
//
// Priority:
//  1. publishConfig.registry of the manifest
//  2. NPM_CONFIG_REGISTRY
//  3. "<@scope>:registry", then "registry" from the npm config files
//  4. The public npm registry
//
// Parameters:
//   - pkg: Package manifest
//   - npmEnv: npm environment of the release
//   - rc: npm config files, may be nil
//
// Returns:
//   - string: Registry URL ending in "/"
func Resolve(pkg *manifest.Package, npmEnv *config.NpmEnv, rc *Npmrc) string {
	registry, source := resolve(pkg, npmEnv, rc)
	registry = withTrailingSlash(registry)
	verbose.Printf("Registry %s (from %s)", registry, source)
	return registry
}

func resolve(pkg *manifest.Package, npmEnv *config.NpmEnv, rc *Npmrc) (string, string) {
	if pkg != nil && pkg.PublishConfig.Registry != "" {
		return pkg.PublishConfig.Registry, "publishConfig"
	}
	if npmEnv != nil && npmEnv.Registry != "" {
		return npmEnv.Registry, "NPM_CONFIG_REGISTRY"
	}
	if pkg != nil {
		if scope := Scope(pkg.Name); scope != "" {
			if v, ok := rc.Get(scope + ":registry"); ok && v != "" {
				return v, scope + ":registry"
			}
		}
	}
	if v, ok := rc.Get("registry"); ok && v != "" {
		return v, "npm config"
	}
	return constants.DefaultRegistry, "default"
}

// Scope returns the "@scope" part of a scoped package name, or empty string.
func Scope(name string) string {
	if !strings.HasPrefix(name, "@") {
		return ""
	}
	scope, _, found := strings.Cut(name, "/")
	if !found {
		return ""
	}
	return scope
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
