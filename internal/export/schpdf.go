package export

import "path/filepath"

// SchematicPDF exports the full schematic set as a single PDF.
func SchematicPDF(env *Env) (string, error) {
	cfg := env.Config.SchematicsPDF
	if !cfg.Enabled {
		return "", nil
	}

	outPath := filepath.Join(env.OutDir, env.FileBase+".pdf")

	argv := []string{env.Tool.Path, "sch", "export", "pdf", env.Project.Sch, "-o", outPath}
	if cfg.Monochrome {
		argv = append(argv, "--black-and-white")
	}

	if res := env.Runner.Run(argv, ""); res.Code != 0 {
		return "", &Error{Kind: KindSchematicPDF, Message: "schematic PDF export failed", Output: res.FailureText()}
	}
	return outPath, nil
}
