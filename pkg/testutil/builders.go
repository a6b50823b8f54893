package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/manifest"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
)

// ConfigBuilder provides a fluent API for building plugin configurations.
type ConfigBuilder struct {
	cfg config.PluginConfig
}

// NewConfig creates a new ConfigBuilder with no rules.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithRule appends a deprecation rule.
func (b *ConfigBuilder) WithRule(version, message string) *ConfigBuilder {
	b.cfg.Deprecations = append(b.cfg.Deprecations, deprecation.Rule{Version: version, Message: message})
	return b
}

// WithSkipAuth sets skipAuth.
func (b *ConfigBuilder) WithSkipAuth() *ConfigBuilder {
	b.cfg.SkipAuth = true
	return b
}

// WithPkgRoot sets pkgRoot.
func (b *ConfigBuilder) WithPkgRoot(dir string) *ConfigBuilder {
	b.cfg.PkgRoot = dir
	return b
}

// Build returns the configuration.
func (b *ConfigBuilder) Build() *config.PluginConfig {
	cfg := b.cfg
	return &cfg
}

// PackageBuilder provides a fluent API for building package manifests.
type PackageBuilder struct {
	pkg manifest.Package
}

// NewPackage creates a new PackageBuilder with the given name.
func NewPackage(name string) *PackageBuilder {
	return &PackageBuilder{pkg: manifest.Package{Name: name}}
}

// WithRule appends a deprecation rule to the manifest.
func (b *PackageBuilder) WithRule(version, message string) *PackageBuilder {
	b.pkg.Deprecations = append(b.pkg.Deprecations, deprecation.Rule{Version: version, Message: message})
	return b
}

// WithRegistry sets publishConfig.registry.
func (b *PackageBuilder) WithRegistry(url string) *PackageBuilder {
	b.pkg.PublishConfig.Registry = url
	return b
}

// Build returns the manifest.
func (b *PackageBuilder) Build() *manifest.Package {
	pkg := b.pkg
	return &pkg
}

// WriteFile writes content to dir/name and returns the path.
//
// Parameters:
//   - t: Testing instance; the test fails on write errors
//   - dir: Target directory
//   - name: File name, may contain subdirectories
//   - content: File content
//
// Returns:
//   - string: Path of the written file
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// NewContext returns a release context for nextVersion rooted in a temp dir.
//
// HOME points to an empty temp dir so no real ~/.npmrc is read.
//
// Parameters:
//   - t: Testing instance
//   - nextVersion: nextRelease.version
//   - env: Extra environment entries
//
// Returns:
//   - *release.Context: Context with Cwd set to a fresh temp dir
func NewContext(t *testing.T, nextVersion string, env map[string]string) *release.Context {
	t.Helper()
	merged := map[string]string{"HOME": t.TempDir()}
	for k, v := range env {
		merged[k] = v
	}
	return &release.Context{
		Cwd:         t.TempDir(),
		Env:         merged,
		NextRelease: &release.Release{Version: nextVersion, GitTag: "v" + nextVersion},
		Logger:      release.NewLogger(os.Stderr),
	}
}
