package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/output"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/plugin"
)

var planOutputFlag string

var buildPlanFunc = plugin.BuildPlan

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the deprecations a release would apply",
	Long: `Render the deprecation rules against the release context and print the
npm commands the success stage would run. Nothing is written or executed.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutputFlag, "output", "o", "table", "Output format: table, json, csv")
}

// runPlan prints the planned deprecations in the requested format.
func runPlan(cmd *cobra.Command, args []string) error {
	cfg, rc, err := loadStage(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	plan, err := buildPlanFunc(cfg, rc)
	if err != nil {
		return err
	}
	return output.WritePlan(cmd.OutOrStdout(), plan, output.ParseFormat(planOutputFlag))
}
