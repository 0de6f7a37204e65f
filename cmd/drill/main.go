// Package main implements drill, a command-line flashcard trainer that
// schedules prompts by an exponentially decaying retention score.
package main

import (
	"fmt"
	"os"
)

// main is the entry point for the drill command.
// Any fatal error ends the process with exit status 1 and no state written.
func main() {
	cmd := newRootCmd(defaultDeps())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
