// Package main is the entry point for the semrel-npm-deprecate CLI.
//
// A release pipeline runs the binary at its success stage to deprecate
// older npm versions of the package that was just published.
package main

import "github.com/ajxudir/semrel-npm-deprecate/cmd"

// main delegates command parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
