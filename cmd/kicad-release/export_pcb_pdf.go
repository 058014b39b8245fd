package main

import "github.com/jonathan/kicad-release/internal/export"

func init() {
	rootCmd.AddCommand(newArtifactCommand("pcb-pdf", "Export the PCB PDF only", export.KindPCBPDF))
}
