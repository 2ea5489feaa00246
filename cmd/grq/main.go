// Package main is the entry point for the GRQ validation engine. It
// scores published stock picks against their 90-day price targets and
// a cost-of-capital hurdle, stores the results, and serves them over
// an HTTP API.
package main

import (
	"os"

	"github.com/aristath/grq-validation/cmd/grq/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
