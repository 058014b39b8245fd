package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/kicad-release/internal/export"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full export pipeline",
	Long: `Exports every enabled artifact in a fixed order: Gerbers and drill files,
STEP model, PCB PDF, schematic PDF, BOM. Output paths and every kicad-cli
invocation are recorded in a manifest.json next to the artifacts.`,
	RunE: runExport,
}

var (
	runProjectDir  string
	runProjectName string
	runTag         string
	runConfigPath  string
	runOutDir      string
	runColor       bool
	runMonochrome  bool
	runVerbose     bool
	runQuiet       bool
)

func init() {
	addRunFlags(runCommand)
	rootCmd.AddCommand(runCommand)
}

// addRunFlags registers the shared pre-export flag set on cmd. The
// per-artifact subcommands reuse it so a single-artifact export resolves
// config, project, and tool exactly like a full run.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runProjectDir, "project-dir", "", "Path to the folder containing the .kicad_pro file")
	cmd.Flags().StringVar(&runProjectName, "project-name", "", "Project basename without extension (disambiguates when the folder holds several projects)")
	cmd.Flags().StringVar(&runTag, "tag", "", "Release tag or build label (defaults to the current UTC time as yyyyMMdd-HHmm)")
	cmd.Flags().StringVar(&runConfigPath, "config", "", "Path to a YAML config overriding the export defaults")
	cmd.Flags().StringVar(&runOutDir, "out-dir", "", "Output directory (default: Exports/<name>_<tag>/ under the project dir)")

	cmd.Flags().BoolVar(&runColor, "color", false, "Force color PDF outputs (overrides config)")
	cmd.Flags().BoolVar(&runMonochrome, "monochrome", false, "Force black-and-white PDF outputs (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("color", "monochrome")

	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Echo every kicad-cli invocation")
	cmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Minimal logging")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = cmd.MarkFlagRequired("project-dir")
}

// runOptions collects the shared flags into export options.
func runOptions() export.Options {
	return export.Options{
		ProjectDir:  runProjectDir,
		ProjectName: runProjectName,
		Tag:         runTag,
		ConfigPath:  runConfigPath,
		OutDir:      runOutDir,
		ForceColor:  runColor,
		ForceMono:   runMonochrome,
		Verbose:     runVerbose,
		Quiet:       runQuiet,
	}
}

func runExport(_ *cobra.Command, _ []string) error {
	_, err := export.Execute(runOptions())
	return err
}
