// Package main is the entry point for the rightmove CLI.
package main

import (
	"os"

	"github.com/apwebber/rightmove-webscraper/cmd/rightmove/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
