package main

import "github.com/jonathan/kicad-release/internal/export"

func init() {
	rootCmd.AddCommand(newArtifactCommand("step", "Export the STEP 3D model only", export.KindStep))
}
