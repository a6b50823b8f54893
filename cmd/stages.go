package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/plugin"
)

var (
	successFunc = plugin.Success
	verifyFunc  = plugin.VerifyConditions
)

var successCmd = &cobra.Command{
	Use:   "success",
	Short: "Deprecate versions for a successful release",
	Long: `Run the success stage: collect the deprecation rules, render them against
the release context, authenticate against the registry and run
"npm deprecate" once per rule, in order.

The first failing rule stops the run; deprecations already applied stay.`,
	Args: cobra.NoArgs,
	RunE: runSuccess,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check rules, npm and registry credentials before a release",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

// runSuccess executes the success stage.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (none)
//
// Returns:
//   - error: Plugin error; its code decides the exit code
func runSuccess(cmd *cobra.Command, args []string) error {
	cfg, rc, err := loadStage(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return successFunc(cfg, rc)
}

// runVerify executes the verify stage.
func runVerify(cmd *cobra.Command, args []string) error {
	cfg, rc, err := loadStage(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return verifyFunc(cfg, rc)
}
