// main package for stunt command-line tool
// Package main is the entry point for the Stunt CLI.
package main

import "stunt.dev/pkg/stunt/cmd"

func main() {
	cmd.Execute()
}
