package plugin

import (
	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/registry"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
)

// Success deprecates package versions after a successful release.
//
// It performs the following operations:
//   - Step 1: Read package.json and merge config rules with manifest rules
//   - Step 2: Return early when there is nothing to deprecate
//   - Step 3: Render every rule against the release context
//   - Step 4: Resolve the registry and write credentials once (unless skipAuth)
//   - Step 5: Run npm deprecate for each rule in order
//
// Rules already applied are not rolled back when a later one fails. The
// temporary credentials file is removed before returning.
//
// Parameters:
//   - cfg: Plugin options; nil means no options
//   - rc: Release context
//
// Returns:
//   - error: First failure, as a coded PluginError where applicable
func Success(cfg *config.PluginConfig, rc *release.Context) error {
	logger := rc.Log()

	c, err := collect(cfg, rc)
	if err != nil {
		return err
	}
	if len(c.rules) == 0 {
		logger.Log("No deprecations configured for %s", c.pkg.Name)
		return nil
	}

	rules, err := deprecation.Render(c.rules, rc.Bindings())
	if err != nil {
		logger.Error("Cannot render deprecations: %v", err)
		return err
	}

	var auth *deprecation.Auth
	if cfg.UsesAuth() {
		npmEnv, err := config.LoadNpmEnv(rc.Env)
		if err != nil {
			return err
		}
		rcfg := registry.LoadNpmrc(rc.Cwd, npmEnv, rc.Env)
		registryURL := registry.Resolve(c.pkg, npmEnv, rcfg)

		npmrc, cleanup, err := registry.TempNpmrc()
		defer cleanup()
		if err != nil {
			return err
		}
		extra, err := registry.SetAuth(npmrc, registryURL, rcfg, npmEnv, logger)
		if err != nil {
			return err
		}
		auth = &deprecation.Auth{UserConfig: npmrc, Registry: registryURL, Env: extra}
	}

	for _, rule := range rules {
		if err := Deprecate(rule, c.pkg.Name, auth, rc); err != nil {
			logger.Error("Deprecation of %s@%s failed", c.pkg.Name, rule.Version)
			return err
		}
	}

	logger.Success("Processed %d deprecation(s) for %s", len(rules), c.pkg.Name)
	return nil
}
