// Package main provides the CLI entry point for the route manager.
// The root command answers one of five fixed questions about airline routes;
// the load and query subcommands persist the joined datasets and explore them with SQL.
package main

import (
	"os"

	"github.com/fatih/color"

	"route-manager/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
