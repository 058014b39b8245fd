package main

import "github.com/jonathan/kicad-release/internal/export"

func init() {
	rootCmd.AddCommand(newArtifactCommand("bom", "Export the BOM only", export.KindBOMCSV))
}
