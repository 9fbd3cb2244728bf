// Package main is the entry point for the cup CLI.
package main

import "github.com/rezi-labs/cup/cmd"

func main() {
	cmd.Execute()
}
