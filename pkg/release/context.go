package release

import (
	"os"
	"sort"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// Release describes a release as seen by the release tool.
//
// Fields:
//   - Type: Release type (major, minor, patch, prerelease)
//   - Version: Semantic version, e.g. "2.1.0"
//   - GitTag: Tag pointing at the release commit, e.g. "v2.1.0"
//   - GitHead: Commit sha of the release
//   - Channel: Distribution channel, empty for the default channel
//   - Name: Display name of the release
//   - Notes: Generated release notes
type Release struct {
	Type    string `json:"type,omitempty"`
	Version string `json:"version,omitempty"`
	GitTag  string `json:"gitTag,omitempty"`
	GitHead string `json:"gitHead,omitempty"`
	Channel string `json:"channel,omitempty"`
	Name    string `json:"name,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Branch is the branch the release runs on.
type Branch struct {
	Name    string `json:"name,omitempty"`
	Channel string `json:"channel,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Options holds the release tool options relevant to the plugin.
type Options struct {
	DryRun        bool   `json:"dryRun,omitempty"`
	RepositoryURL string `json:"repositoryUrl,omitempty"`
	TagFormat     string `json:"tagFormat,omitempty"`
}

// Context is the release context passed to lifecycle functions.
//
// Fields:
//   - Cwd: Working directory of the release
//   - Env: Environment the release runs with; also the subprocess environment
//   - Branch: Current release branch
//   - NextRelease: Release being published, nil outside of release stages
//   - LastRelease: Previous release on the branch, nil for the first release
//   - Options: Release tool options
//   - Logger: Stage logger; NewLogger(os.Stderr) is used when nil
type Context struct {
	Cwd         string            `json:"cwd,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Branch      Branch            `json:"branch,omitempty"`
	NextRelease *Release          `json:"nextRelease,omitempty"`
	LastRelease *Release          `json:"lastRelease,omitempty"`
	Options     Options           `json:"options,omitempty"`
	Logger      Logger            `json:"-"`

	raw *orderedmap.OrderedMap
}

// NewContext creates a context for cwd with the current process environment.
//
// Parameters:
//   - cwd: Working directory; "." when empty
//
// Returns:
//   - *Context: Context with Env populated from os.Environ and a stderr logger
func NewContext(cwd string) *Context {
	if cwd == "" {
		cwd = "."
	}
	return &Context{
		Cwd:    cwd,
		Env:    EnvFromOS(),
		Logger: NewLogger(os.Stderr),
	}
}

// Log returns the context logger, falling back to a stderr logger.
func (c *Context) Log() Logger {
	if c.Logger == nil {
		c.Logger = NewLogger(os.Stderr)
	}
	return c.Logger
}

// Getenv returns an environment value from the context env.
func (c *Context) Getenv(key string) string {
	return c.Env[key]
}

// MergeEnv adds base entries that the context env does not already define.
//
// Values already present in the context win, so a context file can
// override the process environment.
//
// Parameters:
//   - base: Environment to merge underneath, typically EnvFromOS()
func (c *Context) MergeEnv(base map[string]string) {
	if c.Env == nil {
		c.Env = make(map[string]string, len(base))
	}
	for k, v := range base {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
}

// EnvFromOS returns the process environment as a map.
func EnvFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// EnvList converts an env map into sorted KEY=VALUE entries.
func EnvList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
