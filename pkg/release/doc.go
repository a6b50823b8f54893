// Package release models the context a release tool hands to a plugin
// at each lifecycle stage.
//
// A Context carries the typed fields the plugin reads (cwd, env, the next
// release) and keeps the raw JSON document it was loaded from, so templates
// can reach any key the release tool provided, not only the typed ones.
package release
