package registry

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// Npmrc is a merged view of npm config files.
//
// Fields:
//   - Files: Files that were read, lowest priority first
//   - Content: Raw contents of Files joined with newlines
type Npmrc struct {
	Files   []string
	Content string

	values map[string]string
	env    map[string]string
}

var readFileFunc = os.ReadFile

// LoadNpmrc reads the npm config files relevant to a release.
//
// The user config file (NPM_CONFIG_USERCONFIG, or .npmrc in cwd) takes
// priority over ~/.npmrc. Missing files are skipped.
//
// Parameters:
//   - cwd: Release working directory
//   - npmEnv: npm environment of the release
//   - env: Full release environment, used to expand ${VAR} references
//
// Returns:
//   - *Npmrc: Merged config, possibly empty
func LoadNpmrc(cwd string, npmEnv *config.NpmEnv, env map[string]string) *Npmrc {
	var candidates []string
	if home := homeDir(npmEnv); home != "" {
		candidates = append(candidates, filepath.Join(home, constants.NpmrcFile))
	}
	userConfig := npmEnv.UserConfig
	if userConfig == "" {
		userConfig = filepath.Join(cwd, constants.NpmrcFile)
	}
	candidates = append(candidates, userConfig)

	rc := &Npmrc{values: make(map[string]string), env: env}
	var contents []string
	seen := make(map[string]bool)
	for _, path := range candidates {
		abs, err := filepath.Abs(path)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		data, err := readFileFunc(path)
		if err != nil {
			continue
		}
		rc.Files = append(rc.Files, path)
		contents = append(contents, string(data))
		values, err := ParseNpmrc(data)
		if err != nil {
			verbose.Printf("npm config: skipping values of %s: %v", path, err)
			continue
		}
		for k, v := range values {
			rc.values[k] = v
		}
	}
	rc.Content = strings.Join(contents, "\n")

	verbose.Printf("npm config: read %d file(s) %v", len(rc.Files), rc.Files)
	return rc
}

func homeDir(npmEnv *config.NpmEnv) string {
	if npmEnv.Home != "" {
		return npmEnv.Home
	}
	home, _ := os.UserHomeDir()
	return home
}

// Get returns the value of key with ${VAR} references expanded.
//
// Returns:
//   - string: Value, empty when unset or when it references an unset variable only
//   - bool: true when key is present
func (rc *Npmrc) Get(key string) (string, bool) {
	if rc == nil {
		return "", false
	}
	v, ok := rc.values[key]
	if !ok {
		return "", false
	}
	return expandEnv(v, rc.env), true
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnv replaces ${VAR} references the way npm does when reading config.
func expandEnv(s string, env map[string]string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return env[ref[2:len(ref)-1]]
	})
}

// npmrcOptions follows npm's ini dialect: `=` is the only delimiter, so
// `//host/:_authToken` keys survive, and a bare key means true.
var npmrcOptions = ini.LoadOptions{
	KeyValueDelimiters:        "=",
	AllowBooleanKeys:          true,
	UnescapeValueDoubleQuotes: true,
	SpaceBeforeInlineComment:  true,
}

// ParseNpmrc parses npm ini-style config data.
//
// Only top-level keys are returned; npm nests keys under a [section] header,
// so they never name registry settings. Later keys win.
//
// Parameters:
//   - data: File contents
//
// Returns:
//   - map[string]string: Key/value pairs with values unexpanded
//   - error: When data is not valid ini
func ParseNpmrc(data []byte) (map[string]string, error) {
	file, err := ini.LoadSources(npmrcOptions, data)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		values[key.Name()] = key.Value()
	}
	return values, nil
}
