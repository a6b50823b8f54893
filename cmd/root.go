// Package cmd implements the command-line interface for semrel-npm-deprecate.
// It provides the release stage commands (verify, success) together with
// plan and config helpers for inspecting what a release would deprecate.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

var exitFunc = os.Exit
var versionFlag bool

// settings resolves persistent flags, falling back to SEMREL_NPM_DEPRECATE_* env vars.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   constants.PluginName,
	Short: "Deprecate npm package versions after a release",
	Long: `Mark npm package versions as deprecated when a release succeeds.

Rules come from the plugin configuration and from the "deprecations" field of
package.json. Versions and messages are templates rendered against the
release context, e.g. "< ${nextRelease.version.split('.')[0]}".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if settings.GetBool("verbose") {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput(cmd.OutOrStdout())
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 2: Deprecation or template failure
//   - 3: Configuration, context, or credentials error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errors.PrintErrorWithHints(rootCmd.ErrOrStderr(), []error{err}, verbose.IsEnabled())

		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("cwd", "", "Working directory of the release (default: current directory)")
	flags.StringP("config", "c", "", "Plugin options or release config file (default: .releaserc* discovery)")
	flags.String("context", "", "Release context JSON file written by the release tool")
	flags.String("next-version", "", "Version being released (nextRelease.version)")
	flags.String("next-tag", "", "Tag of the release (nextRelease.gitTag)")
	flags.String("channel", "", "Distribution channel of the release (nextRelease.channel)")
	flags.Bool("dry-run", false, "Print npm commands instead of running them")
	flags.Bool("verbose", false, "Enable verbose debug output")

	settings.SetEnvPrefix(constants.EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	if err := settings.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}

	// Add -v/--version as a LOCAL flag (not persistent) so it only works on root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Release stages first, then inspection helpers
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(successCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
