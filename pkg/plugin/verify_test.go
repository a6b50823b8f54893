package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	pkgerrors "github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/preflight"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/testutil"
)

// TestVerifyConditions tests the behavior of VerifyConditions.
//
// It verifies:
//   - Valid setups pass
//   - Every problem is reported at once
func TestVerifyConditions(t *testing.T) {
	pkg := testutil.NewPackage("p").WithRule("< 1", "m").Build()

	t.Run("passes with token", func(t *testing.T) {
		setup(t, pkg, nil)
		rc, log := newContext(t, map[string]string{"NPM_TOKEN": "t"})

		require.NoError(t, VerifyConditions(nil, rc))
		assert.Equal(t, []string{"Verified 1 deprecation(s) for p"}, log.successes)
	})

	t.Run("passes with existing npmrc auth", func(t *testing.T) {
		setup(t, pkg, nil)
		rc, _ := newContext(t, nil)
		require.NoError(t, os.WriteFile(filepath.Join(rc.Cwd, ".npmrc"), []byte("//registry.npmjs.org/:_authToken = abc"), 0o600))

		assert.NoError(t, VerifyConditions(nil, rc))
	})

	t.Run("no rules skips environment checks", func(t *testing.T) {
		setup(t, testutil.NewPackage("p").Build(), nil)
		ValidateCommands = func(...string) *preflight.ValidateResult {
			return &preflight.ValidateResult{Errors: []preflight.ValidationError{{Command: "npm"}}}
		}
		rc, _ := newContext(t, nil)

		assert.NoError(t, VerifyConditions(nil, rc))
	})

	t.Run("reports all problems", func(t *testing.T) {
		setup(t, pkg, nil)
		ValidateCommands = func(...string) *preflight.ValidateResult {
			return &preflight.ValidateResult{Errors: []preflight.ValidationError{{Command: "npm", Hint: "Install Node.js"}}}
		}
		rc, _ := newContext(t, nil)
		cfg := &config.PluginConfig{Deprecations: []deprecation.Rule{
			{Version: "", Message: "empty"},
			{Version: "< 2", Message: "${nextRelease.version"},
		}}

		err := VerifyConditions(cfg, rc)
		require.Error(t, err)
		for _, code := range []string{
			pkgerrors.CodeInvalidConfig,
			pkgerrors.CodeInvalidTemplate,
			pkgerrors.CodeNoNpm,
			pkgerrors.CodeNoNpmToken,
		} {
			assert.True(t, pkgerrors.HasCode(err, code), "missing %s in %v", code, err)
		}
	})

	t.Run("skipAuth", func(t *testing.T) {
		setup(t, pkg, nil)
		rc, _ := newContext(t, nil)

		assert.NoError(t, VerifyConditions(testutil.NewConfig().WithSkipAuth().Build(), rc))
	})

	t.Run("empty version in package.json", func(t *testing.T) {
		setup(t, testutil.NewPackage("p").WithRule("", "all versions").Build(), nil)
		rc, _ := newContext(t, map[string]string{"NPM_TOKEN": "t"})

		err := VerifyConditions(nil, rc)
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidConfig))
		assert.Contains(t, err.Error(), "deprecation #1 version must not be empty")
	})

	t.Run("missing package", func(t *testing.T) {
		setup(t, nil, nil)
		rc, _ := newContext(t, nil)

		err := VerifyConditions(nil, rc)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNoPackage))
	})
}
