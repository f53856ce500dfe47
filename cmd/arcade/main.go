package main

import (
	"os"

	"github.com/runnerr0/arcade/internal/cli"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags already prints errors to stderr.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
