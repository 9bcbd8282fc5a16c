package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The failure has already been reported as a workflow error annotation
		os.Exit(1)
	}
}
