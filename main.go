// apps/solver/main.go
//
// Entry point for the solver binary. The command tree lives in commands.go.
// Only long-running commands (serve, simulate) trap SIGINT/SIGTERM; the rest
// keep Go's default exit on those signals.

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
