package main

import "github.com/jonathan/kicad-release/internal/export"

func init() {
	rootCmd.AddCommand(newArtifactCommand("sch-pdf", "Export the schematic PDF only", export.KindSchematicPDF))
}
