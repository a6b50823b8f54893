package registry

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/config"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/release"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// LegacyTokenVar is the variable the legacy _auth entry refers to.
const LegacyTokenVar = "LEGACY_TOKEN"

var writeFileFunc = os.WriteFile

// HasAuth reports whether rc already holds credentials for registryURL.
//
// Per-registry keys are looked up for the registry path and each of its
// parents, then the global _authToken and _auth keys. Values referring to
// unset variables do not count.
//
// Parameters:
//   - registryURL: Registry URL
//   - rc: npm config files
//
// Returns:
//   - bool: true when npm would authenticate against the registry
func HasAuth(registryURL string, rc *Npmrc) bool {
	u, err := url.Parse(registryURL)
	if err != nil || u.Host == "" {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	for {
		key := "//" + u.Host + strings.TrimSuffix(path, "/")
		for _, prefix := range []string{key, key + "/"} {
			if hasValue(rc, prefix+":_authToken") || hasValue(rc, prefix+":_auth") ||
				(hasValue(rc, prefix+":username") && hasValue(rc, prefix+":_password")) {
				return true
			}
		}
		if path == "/" {
			break
		}
		path = parentPath(path)
	}

	return hasValue(rc, "_authToken") || hasValue(rc, "_auth")
}

func hasValue(rc *Npmrc, key string) bool {
	v, ok := rc.Get(key)
	return ok && v != ""
}

// parentPath returns the parent of a URL path, always ending in "/".
func parentPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i+1]
}

// SetAuth writes the npm config file used by the deprecate commands.
//
// The existing npm config is copied into npmrcPath. When it does not already
// authenticate registryURL, credentials are appended: _auth and email when
// NPM_USERNAME, NPM_PASSWORD and NPM_EMAIL are all set, otherwise an
// _authToken entry for the registry when NPM_TOKEN is set. Secrets are
// written as ${VAR} placeholders that npm expands from the environment.
//
// Parameters:
//   - npmrcPath: File to write
//   - registryURL: Registry to authenticate
//   - rc: Existing npm config
//   - npmEnv: npm environment of the release
//   - logger: Stage logger
//
// Returns:
//   - map[string]string: Variables the npm process needs in addition to the
//     release environment (LEGACY_TOKEN for username/password auth)
//   - error: ENONPMTOKEN PluginError when no credentials are available, or a write error
func SetAuth(npmrcPath, registryURL string, rc *Npmrc, npmEnv *config.NpmEnv, logger release.Logger) (map[string]string, error) {
	if len(rc.Files) > 0 {
		logger.Log("Reading npm config from %s", strings.Join(rc.Files, ", "))
	}

	current := rc.Content
	if HasAuth(registryURL, rc) {
		verbose.Printf("npm config already authenticates %s", registryURL)
		if err := writeNpmrc(npmrcPath, current); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var extra map[string]string
	var entry, wrote string
	switch {
	case npmEnv.HasLegacyAuth():
		entry = fmt.Sprintf("_auth = ${%s}\nemail = ${NPM_EMAIL}", LegacyTokenVar)
		wrote = "NPM_USERNAME, NPM_PASSWORD and NPM_EMAIL"
		extra = map[string]string{LegacyTokenVar: npmEnv.LegacyToken()}
	case npmEnv.Token != "":
		entry = NerfDart(registryURL) + ":_authToken = ${NPM_TOKEN}"
		wrote = "NPM_TOKEN"
	default:
		return nil, errors.NewPluginError(errors.CodeNoNpmToken, nil, "no npm token specified for %s", registryURL)
	}

	if current != "" {
		current += "\n"
	}
	if err := writeNpmrc(npmrcPath, current+entry); err != nil {
		return nil, err
	}
	logger.Log("Wrote %s to %s", wrote, npmrcPath)
	return extra, nil
}

func writeNpmrc(path, content string) error {
	if err := writeFileFunc(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write npm config %s: %w", path, err)
	}
	return nil
}

// TempNpmrc creates a private directory for a run's npm config file.
//
// Returns:
//   - string: Path of the (not yet created) .npmrc inside the directory
//   - func(): Removes the directory and everything in it
//   - error: Creation error
func TempNpmrc() (string, func(), error) {
	dir, err := os.MkdirTemp("", constants.PluginName+"-")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			verbose.Printf("Failed to remove %s: %v", dir, err)
		}
	}
	return filepath.Join(dir, constants.NpmrcFile), cleanup, nil
}
