package main

// Main entry point of the application
// Executes the Cobra command tree (monitor, restarter)

import (
	"fmt"
	"os"

	"sui-arb-ops/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
