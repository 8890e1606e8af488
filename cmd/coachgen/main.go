// Package main provides the coachgen command, which turns a team maturity
// assessment into a coaching backlog.
package main

import (
	"os"

	"github.com/leapstack-labs/coachgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
