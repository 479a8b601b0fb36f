// Package main is the entry point for the mrt CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cdspub/mrt/internal/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
