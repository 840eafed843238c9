package main

import (
	"fmt"
	"os"
)

// ============================================================================
// CRASHLENS CLI — Cross-filtered London road-accident dashboard
// ============================================================================

// version is set via ldflags at build time.
var version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
