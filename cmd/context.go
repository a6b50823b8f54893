package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/template"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// defaultTagFormat is the tag format of the release tool when options.tagFormat is unset.
const defaultTagFormat = "v${version}"

var (
	loadConfigFunc  = config.LoadConfig
	loadContextFunc = release.LoadContext
	getwdFunc       = os.Getwd
)

// buildContext assembles the release context for a stage command.
//
// The --context file is the base when given; the process environment is
// merged underneath its env, and --cwd, --next-version, --next-tag,
// --channel and --dry-run override what the file says.
//
// Parameters:
//   - logOut: Writer for the stage logger
//
// Returns:
//   - *release.Context: Context ready for plugin calls
//   - error: EINVALIDCONTEXT when the context file is unusable
func buildContext(logOut io.Writer) (*release.Context, error) {
	rc := &release.Context{}
	if path := settings.GetString("context"); path != "" {
		loaded, err := loadContextFunc(path)
		if err != nil {
			return nil, err
		}
		rc = loaded
	}
	rc.MergeEnv(release.EnvFromOS())

	if cwd := settings.GetString("cwd"); cwd != "" {
		rc.Cwd = cwd
	}
	if rc.Cwd == "" {
		wd, err := getwdFunc()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		rc.Cwd = wd
	}

	if err := applyReleaseFlags(rc); err != nil {
		return nil, err
	}
	if settings.GetBool("dry-run") {
		rc.Options.DryRun = true
	}

	rc.Logger = release.NewLogger(logOut)
	verbose.Printf("Release context: cwd=%s dryRun=%t", rc.Cwd, rc.Options.DryRun)
	return rc, nil
}

// applyReleaseFlags copies --next-version, --next-tag and --channel into rc.NextRelease.
//
// When only the version is given the tag is derived from options.tagFormat
// (default "v${version}").
func applyReleaseFlags(rc *release.Context) error {
	version := settings.GetString("next-version")
	tag := settings.GetString("next-tag")
	channel := settings.GetString("channel")
	if version == "" && tag == "" && channel == "" {
		return nil
	}

	if rc.NextRelease == nil {
		rc.NextRelease = &release.Release{}
	}
	if version != "" {
		rc.NextRelease.Version = version
	}
	if channel != "" {
		rc.NextRelease.Channel = channel
	}

	switch {
	case tag != "":
		rc.NextRelease.GitTag = tag
	case version != "":
		format := rc.Options.TagFormat
		if format == "" {
			format = defaultTagFormat
		}
		rendered, err := template.Render(format, map[string]any{"version": version})
		if err != nil {
			return fmt.Errorf("invalid tag format %q: %w", format, err)
		}
		rc.NextRelease.GitTag = rendered
	}
	return nil
}

// loadStage builds the release context and loads the plugin options for it.
func loadStage(logOut io.Writer) (*config.PluginConfig, *release.Context, error) {
	rc, err := buildContext(logOut)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfigFunc(settings.GetString("config"), rc.Cwd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rc, nil
}
