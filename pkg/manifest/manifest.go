// Package manifest reads the npm package manifest (package.json) fields the
// plugin needs: the package name, its registry settings and the
// deprecation rules declared next to them.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// PublishConfig holds the publishConfig fields used for registry resolution.
type PublishConfig struct {
	Registry string `json:"registry,omitempty"`
}

// Package is the subset of package.json the plugin reads.
//
// Fields:
//   - Name: Package name, possibly scoped ("@scope/name")
//   - Version: Version currently in the manifest
//   - Private: Private packages are never published
//   - PublishConfig: Registry override for publishing
//   - Deprecations: Rules declared in the manifest
//   - Path: File the package was read from
type Package struct {
	Name          string             `json:"name"`
	Version       string             `json:"version,omitempty"`
	Private       bool               `json:"private,omitempty"`
	PublishConfig PublishConfig      `json:"publishConfig,omitempty"`
	Deprecations  []deprecation.Rule `json:"deprecations,omitempty"`
	Path          string             `json:"-"`
}

// readFileFunc is the function used to read manifests. Tests replace it.
var readFileFunc = os.ReadFile

// Read loads <dir>/package.json.
//
// Parameters:
//   - dir: Package root directory
//
// Returns:
//   - *Package: Parsed manifest
//   - error: ENOPKG when the file is missing or invalid, EINVALIDCONFIG when
//     deprecations is malformed, ENOPKGNAME when there is no name
func Read(dir string) (*Package, error) {
	path := filepath.Join(dir, constants.ManifestFile)
	data, err := readFileFunc(path)
	if err != nil {
		return nil, errors.NewPluginError(errors.CodeNoPackage, err, "missing %s file", path)
	}

	pkg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	pkg.Path = path

	verbose.Printf("Manifest %s: name=%s, %d deprecation(s)", path, pkg.Name, len(pkg.Deprecations))
	return pkg, nil
}

// Parse decodes a package.json document.
//
// Parameters:
//   - data: JSON content
//
// Returns:
//   - *Package: Parsed manifest with Path unset
//   - error: Coded PluginError, see Read
func Parse(data []byte) (*Package, error) {
	var doc struct {
		Package
		Deprecations json.RawMessage `json:"deprecations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewPluginError(errors.CodeNoPackage, err, "invalid package.json")
	}

	pkg := doc.Package
	if len(doc.Deprecations) > 0 && string(doc.Deprecations) != "null" {
		if err := json.Unmarshal(doc.Deprecations, &pkg.Deprecations); err != nil {
			return nil, errors.NewPluginError(errors.CodeInvalidConfig, fmt.Errorf("deprecations: %w", err),
				"package.json deprecations must be a list of {version, message} objects")
		}
	}

	if pkg.Name == "" {
		return nil, errors.NewPluginError(errors.CodeNoPackageName, nil, "missing name in package.json")
	}
	return &pkg, nil
}
