// Package deprecation holds the deprecation rules applied after a release
// and the operations on them: collecting rules from their sources,
// rendering their templates against the release context, building the
// npm command line and running it.
package deprecation
