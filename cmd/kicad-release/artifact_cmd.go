package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/kicad-release/internal/export"
)

// newArtifactCommand builds a subcommand that runs the shared
// pre-export resolution and then a single exporter.
func newArtifactCommand(use, short string, kind export.ArtifactKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := runOptions()
			opts.Only = kind
			_, err := export.Execute(opts)
			return err
		},
	}
	addRunFlags(cmd)
	return cmd
}
