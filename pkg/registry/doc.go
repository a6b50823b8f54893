// Package registry resolves the npm registry a package is published to and
// prepares a temporary npm config file holding the credentials for it.
//
// Registry resolution and credential writing follow the conventions of the
// npm CLI: publishConfig first, then the environment, then .npmrc files, and
// credentials keyed by the registry "nerf dart" (//host/path/).
package registry
