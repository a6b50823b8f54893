package cmd

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/cmdexec"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/plugin"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/preflight"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/testutil"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(resetCommandState)

	rootCmd.SetArgs(args)
	var err error
	stdout, stderr := testutil.CaptureOutput(t, func() {
		err = ExecuteTest()
	})
	return stdout, stderr, err
}

// resetCommandState restores every flag to its default between tests.
func resetCommandState() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	reset(rootCmd.Flags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	verbose.Disable()
}

// isolateEnv clears npm related variables and points HOME at an empty dir.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"NPM_TOKEN", "NPM_USERNAME", "NPM_PASSWORD", "NPM_EMAIL",
		"NPM_CONFIG_REGISTRY", "NPM_CONFIG_USERCONFIG",
		"SEMREL_NPM_DEPRECATE_DRY_RUN", "SEMREL_NPM_DEPRECATE_NEXT_VERSION",
	} {
		t.Setenv(key, "")
	}
}

// recordCommands replaces cmdexec.Run and returns the executed commands.
func recordCommands(t *testing.T, runErr error) *[]string {
	t.Helper()
	old := cmdexec.Run
	t.Cleanup(func() { cmdexec.Run = old })

	var commands []string
	cmdexec.Run = func(command string, opts cmdexec.Options) error {
		commands = append(commands, command)
		return runErr
	}
	return &commands
}

// stubPreflight makes the npm availability check pass.
func stubPreflight(t *testing.T) {
	t.Helper()
	old := plugin.ValidateCommands
	t.Cleanup(func() { plugin.ValidateCommands = old })
	plugin.ValidateCommands = func(...string) *preflight.ValidateResult { return &preflight.ValidateResult{} }
}

// newProject writes package.json and, when non-empty, .releaserc.yaml.
func newProject(t *testing.T, manifest, releaserc string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "package.json", manifest)
	if releaserc != "" {
		testutil.WriteFile(t, dir, ".releaserc.yaml", releaserc)
	}
	return dir
}

const majorRuleConfig = `deprecations:
  - version: "< ${nextRelease.version.split('.')[0]}"
    message: "Please use ^${nextRelease.version.split('.')[0]}.0.0"
`

const manifestWithRule = `{
  "name": "my-pkg",
  "version": "0.0.0-development",
  "deprecations": [{"version": "0.x", "message": "unsupported"}]
}`
