// Package plugin implements the release lifecycle steps of
// semrel-npm-deprecate.
//
// Success applies the deprecation rules after a release has been published.
// VerifyConditions checks up front that Success can run, and Plan computes
// what Success would do without side effects.
package plugin
