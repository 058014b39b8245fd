package main

import "github.com/jonathan/kicad-release/internal/export"

func init() {
	rootCmd.AddCommand(newArtifactCommand("gerbers", "Export Gerbers and drill files only", export.KindGerbers))
}
