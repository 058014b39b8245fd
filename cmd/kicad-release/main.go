// Package main provides the kicad-release command line tool, which
// drives kicad-cli to export release artifacts from a KiCad project.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/kicad-release/internal/export"
)

// Exit codes: exporter failures are distinguished from setup failures
// (config, project, tool location) so callers can tell whether the run
// got as far as invoking the tool.
const (
	exitExportFailure = 1
	exitSetupFailure  = 2
)

var rootCmd = &cobra.Command{
	Use:   "kicad-release",
	Short: "Export KiCad release artifacts with kicad-cli",
	Long:  "kicad-release drives kicad-cli to export Gerbers, drill files, a STEP model, PCB and schematic PDFs, and a BOM from a KiCad project, then packages them with a JSON manifest.",

	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to the process exit code. Anything that is
// not an exporter failure happened before or outside the export
// sequence.
func exitCodeFor(err error) int {
	var exportErr *export.Error
	if errors.As(err, &exportErr) {
		return exitExportFailure
	}
	return exitSetupFailure
}
