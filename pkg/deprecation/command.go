package deprecation

import (
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/cmdexec"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
)

// Auth points the npm command at a prepared credentials file.
//
// Fields:
//   - UserConfig: Path of the .npmrc holding the credentials
//   - Registry: Registry URL, with trailing slash
//   - Env: Extra variables the credentials file refers to (e.g. LEGACY_TOKEN)
type Auth struct {
	UserConfig string
	Registry   string
	Env        map[string]string
}

// Command builds the npm command line that applies rule to package name.
//
// With auth the command is
//
//	npm deprecate --userconfig <path> --registry <url> <name>@"<version>" "<message>"
//
// and without it
//
//	npm deprecate <name>@"<version>" "<message>"
//
// Version and message are double-quoted with shell metacharacters escaped.
//
// Parameters:
//   - rule: Rendered rule
//   - name: Package name from the manifest
//   - auth: Credentials to use, nil to rely on the ambient npm config
//
// Returns:
//   - string: Shell command line
func Command(rule Rule, name string, auth *Auth) string {
	var sb strings.Builder
	sb.WriteString(constants.NpmCommand)
	sb.WriteString(" deprecate ")
	if auth != nil {
		sb.WriteString("--userconfig ")
		sb.WriteString(auth.UserConfig)
		sb.WriteString(" --registry ")
		sb.WriteString(auth.Registry)
		sb.WriteByte(' ')
	}
	sb.WriteString(name)
	sb.WriteByte('@')
	sb.WriteString(cmdexec.DoubleQuote(rule.Version))
	sb.WriteByte(' ')
	sb.WriteString(cmdexec.DoubleQuote(rule.Message))
	return sb.String()
}
