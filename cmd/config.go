package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/output"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// initConfigName is the file written by config --init.
const initConfigName = ".releaserc.yaml"

var (
	configTemplateFlag      bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
)

var (
	writeFileFunc = os.WriteFile
	statFunc      = os.Stat
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate or create plugin configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configTemplateFlag, "template", false, "Print the configuration template")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show the options the stages would use")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create "+initConfigName+" from the template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate options and rule templates")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .releaserc.yaml template file in the working directory
//   - --validate: Validates the plugin options and rule templates
//   - --template: Prints the configuration template
//   - --show-effective: Displays the loaded options and their source
//
// Returns:
//   - error: ExitError with ExitConfigError on validation failure, or a load/write error
func runConfig(cmd *cobra.Command, args []string) error {
	workDir, err := configWorkDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case configInitFlag:
		return createConfigTemplate(out, workDir)
	case configValidateFlag:
		return validateConfig(out, workDir)
	case configTemplateFlag:
		_, _ = fmt.Fprint(out, config.GetTemplateConfig())
		return nil
	case configShowEffectiveFlag:
		cfg, err := loadConfigFunc(settings.GetString("config"), workDir)
		if err != nil {
			return err
		}
		writeEffectiveConfig(out, cfg, workDir)
		return nil
	}
	return cmd.Help()
}

func configWorkDir() (string, error) {
	if cwd := settings.GetString("cwd"); cwd != "" {
		return cwd, nil
	}
	wd, err := getwdFunc()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}

// createConfigTemplate writes the embedded template to workDir/.releaserc.yaml.
//
// Fails if the file already exists.
func createConfigTemplate(w io.Writer, workDir string) error {
	path := filepath.Join(workDir, initConfigName)
	if _, err := statFunc(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := writeFileFunc(path, []byte(config.GetTemplateConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Created configuration template: %s\n", path)
	return nil
}

// validateConfig loads the options and checks every rule.
//
// Unknown keys are reported as warnings and structural problems as errors
// while loading; empty versions and templates that do not parse are errors.
//
// Returns:
//   - error: ExitError with ExitConfigError when any check fails
func validateConfig(w io.Writer, workDir string) error {
	cfg, err := loadConfigFunc(settings.GetString("config"), workDir)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	var problems []string
	for _, e := range deprecation.Check(cfg.Rules()) {
		problems = append(problems, e.Error())
	}

	if len(problems) > 0 {
		_, _ = fmt.Fprintf(w, "%s Configuration validation failed for: %s\n\n", constants.IconError, cfg.Describe())
		for _, p := range problems {
			_, _ = fmt.Fprintf(w, "  ERROR: %s\n", p)
		}
		verbose.Infof("Exit code %d (config error): %d problem(s) in %s", errors.ExitConfigError, len(problems), cfg.Describe())
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	_, _ = fmt.Fprintf(w, "%s Configuration valid: %s\n", constants.IconSuccess, cfg.Describe())
	return nil
}

// writeEffectiveConfig prints the loaded options with the rules as a table.
func writeEffectiveConfig(w io.Writer, cfg *config.PluginConfig, workDir string) {
	_, _ = fmt.Fprintln(w, "Effective configuration:")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Source:    %s\n", cfg.Describe())
	_, _ = fmt.Fprintf(w, "Package:   %s\n", filepath.Join(cfg.PackageDir(workDir), constants.ManifestFile))
	_, _ = fmt.Fprintf(w, "Skip auth: %t\n", cfg.SkipAuth)
	_, _ = fmt.Fprintln(w)

	rules := cfg.Rules()
	if len(rules) == 0 {
		_, _ = fmt.Fprintln(w, "No deprecation rules in the configuration (package.json rules are added at release time).")
		return
	}

	table := output.NewTable().AddColumn("#").AddColumn("VERSION").AddColumn("MESSAGE")
	for i, rule := range rules {
		table.UpdateWidths(strconv.Itoa(i+1), rule.Version, messageOrPlaceholder(rule.Message))
	}
	table.Fprint(w)
	for i, rule := range rules {
		_, _ = fmt.Fprintln(w, table.FormatRow(strconv.Itoa(i+1), rule.Version, messageOrPlaceholder(rule.Message)))
	}
}

func messageOrPlaceholder(message string) string {
	if message == "" {
		return constants.PlaceholderEmpty
	}
	return message
}
