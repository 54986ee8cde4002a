package main

import (
	"os"

	"github.com/conduit-lang/spatial/internal/cli/ui"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		ui.WriteError(os.Stderr, err, noColor)
		os.Exit(1)
	}
}
