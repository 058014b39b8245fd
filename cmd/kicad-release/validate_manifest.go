package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/kicad-release/internal/schemas"
)

var validateManifestCmd = &cobra.Command{
	Use:   "validate-manifest <manifest.json>",
	Short: "Validate a run manifest against the manifest schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateManifest,
}

func init() {
	rootCmd.AddCommand(validateManifestCmd)
}

func runValidateManifest(cmd *cobra.Command, args []string) error {
	schemaPath := schemas.ResolveSchemaPath(schemas.ManifestSchema)
	if schemaPath == "" {
		return fmt.Errorf("schema file not found: %s", schemas.ManifestSchema)
	}

	if err := schemas.ValidateJSON(schemaPath, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
	return nil
}
