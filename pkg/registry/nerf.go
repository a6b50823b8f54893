package registry

import (
	"net/url"
	"strings"
)

// NerfDart returns the scheme-less key npm uses for per-registry settings.
//
// Scheme, credentials, query and fragment are dropped, as is the last path
// segment, so "https://registry.npmjs.org/" becomes "//registry.npmjs.org/"
// and "https://npm.example.com/repo/npm" becomes "//npm.example.com/repo/".
//
// Parameters:
//   - registryURL: Registry URL
//
// Returns:
//   - string: "//host[:port]/path/"
func NerfDart(registryURL string) string {
	u, err := url.Parse(registryURL)
	if err != nil || u.Host == "" {
		// Fall back to plain string handling for inputs url.Parse rejects.
		s := registryURL
		if i := strings.Index(s, "//"); i >= 0 {
			s = s[i+2:]
		}
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
		host, path, _ := strings.Cut(s, "/")
		return "//" + host + dirOf("/"+path)
	}
	return "//" + u.Host + dirOf(u.Path)
}

// dirOf returns path up to and including its last slash.
func dirOf(path string) string {
	if path == "" {
		return "/"
	}
	return path[:strings.LastIndex(path, "/")+1]
}
