package deprecation

import (
	"github.com/ajxudir/semrel-npm-deprecate/pkg/cmdexec"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
)

// Invoker runs deprecation commands.
//
// Fields:
//   - Dir: Working directory of the npm process
//   - Env: Environment layered over the process environment
//   - DryRun: Log commands instead of running them
//   - Logger: Stage logger; required
type Invoker struct {
	Dir    string
	Env    map[string]string
	DryRun bool
	Logger release.Logger
}

// NewInvoker creates an Invoker for the given release context.
func NewInvoker(rc *release.Context) *Invoker {
	return &Invoker{
		Dir:    rc.Cwd,
		Env:    rc.Env,
		DryRun: rc.Options.DryRun,
		Logger: rc.Log(),
	}
}

// Deprecate applies one rendered rule to package name.
//
// The command runs synchronously with inherited stdio. There is no retry;
// a failing command is returned as an EDEPRECATE PluginError.
//
// Parameters:
//   - rule: Rendered rule
//   - name: Package name
//   - auth: Credentials, nil for the no-auth command
//
// Returns:
//   - error: nil on success or in dry-run mode
func (inv *Invoker) Deprecate(rule Rule, name string, auth *Auth) error {
	command := Command(rule, name, auth)
	if inv.DryRun {
		inv.Logger.Log("Skip deprecation in dry-run mode: %s", command)
		return nil
	}

	env := inv.Env
	if auth != nil && len(auth.Env) > 0 {
		env = make(map[string]string, len(inv.Env)+len(auth.Env))
		for k, v := range inv.Env {
			env[k] = v
		}
		for k, v := range auth.Env {
			env[k] = v
		}
	}

	inv.Logger.Log("Deprecating %s@%s", name, rule.Version)
	if err := cmdexec.Run(command, cmdexec.Options{Dir: inv.Dir, Env: env}); err != nil {
		return errors.NewPluginError(errors.CodeDeprecate, err, "npm deprecate %s@%s", name, rule.Version)
	}
	if rule.Message == "" {
		inv.Logger.Success("Removed deprecation of %s@%s", name, rule.Version)
	} else {
		inv.Logger.Success("Deprecated %s@%s", name, rule.Version)
	}
	return nil
}
