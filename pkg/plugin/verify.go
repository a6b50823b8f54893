package plugin

import (
	"errors"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	pkgerrors "github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/registry"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
)

// VerifyConditions checks that Success can run.
//
// It validates every collected rule (non-empty version, templates parse),
// checks npm is available and, unless skipAuth is set, that credentials for
// the registry exist. Nothing but the rules is checked when there are none.
//
// Parameters:
//   - cfg: Plugin options; nil means no options
//   - rc: Release context
//
// Returns:
//   - error: Every problem found, combined with errors.Join; nil when all pass
func VerifyConditions(cfg *config.PluginConfig, rc *release.Context) error {
	c, err := collect(cfg, rc)
	if err != nil {
		return err
	}
	errs := deprecation.Check(c.rules)
	if len(c.rules) == 0 {
		return errors.Join(errs...)
	}

	if result := ValidateCommands(constants.NpmCommand); result.HasErrors() {
		errs = append(errs, pkgerrors.NewPluginError(pkgerrors.CodeNoNpm, errors.New(result.ErrorMessage()), "npm is not available"))
	}

	if cfg.UsesAuth() {
		if err := verifyAuth(c, rc); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		rc.Log().Success("Verified %d deprecation(s) for %s", len(c.rules), c.pkg.Name)
	}
	return errors.Join(errs...)
}

func verifyAuth(c *collected, rc *release.Context) error {
	npmEnv, err := config.LoadNpmEnv(rc.Env)
	if err != nil {
		return err
	}
	rcfg := registry.LoadNpmrc(rc.Cwd, npmEnv, rc.Env)
	registryURL := registry.Resolve(c.pkg, npmEnv, rcfg)

	if npmEnv.HasCredentials() || registry.HasAuth(registryURL, rcfg) {
		return nil
	}
	return pkgerrors.NewPluginError(pkgerrors.CodeNoNpmToken, nil, "no npm token specified for %s", registryURL)
}
