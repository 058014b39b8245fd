package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/kicad-release/internal/archive"
)

// GerberSubdir is the directory under the run output dir that receives
// the raw Gerber and drill files.
const GerberSubdir = "gerbers"

// Gerbers exports the configured layer set and, when enabled, the
// Excellon drill files into the gerbers subdirectory, then zips that
// directory. It returns the zip path, or "" when the section or zipping
// is disabled.
func Gerbers(env *Env) (string, error) {
	cfg := env.Config.Gerbers
	if !cfg.Enabled {
		return "", nil
	}

	gerberDir := filepath.Join(env.OutDir, GerberSubdir)
	if err := os.MkdirAll(gerberDir, 0755); err != nil {
		return "", &Error{Kind: KindGerbers, Message: "Gerber export failed", Cause: err}
	}

	argv := []string{env.Tool.Path, "pcb", "export", "gerbers", env.Project.PCB, "-o", gerberDir}
	if len(cfg.Layers) > 0 {
		argv = append(argv, "--layers", strings.Join(cfg.Layers, ","))
	}
	if res := env.Runner.Run(argv, ""); res.Code != 0 {
		return "", &Error{Kind: KindGerbers, Message: "Gerber export failed", Output: res.FailureText()}
	}

	if cfg.Drill.Enabled {
		if err := exportDrill(env, gerberDir); err != nil {
			return "", err
		}
	}

	if !env.Config.General.ZipGerbers {
		return "", nil
	}
	zipPath := filepath.Join(env.OutDir, env.FileBase+"_gerbers.zip")
	if err := archive.ZipDir(zipPath, gerberDir); err != nil {
		return "", &Error{Kind: KindGerbers, Message: "packaging Gerbers failed", Cause: err}
	}
	return zipPath, nil
}

func exportDrill(env *Env, gerberDir string) error {
	cfg := env.Config.Gerbers.Drill

	argv := []string{env.Tool.Path, "pcb", "export", "drill", env.Project.PCB, "-o", gerberDir}
	switch cfg.Units {
	case "mm":
		argv = append(argv, "--excellon-units", "mm")
	case "in", "inch":
		argv = append(argv, "--excellon-units", "in")
	}
	if cfg.MapFormat != "" {
		argv = append(argv, "--generate-map", "--map-format", normalizeMapFormat(cfg.MapFormat))
	}
	// merge_npth=false means plated and non-plated holes go to separate files.
	if !cfg.MergeNPTH {
		argv = append(argv, "--excellon-separate-th")
	}

	if res := env.Runner.Run(argv, ""); res.Code != 0 {
		return &Error{Kind: KindGerbers, Message: "drill export failed", Output: res.FailureText()}
	}
	return nil
}

// normalizeMapFormat rewrites the legacy "gerber" map-format alias to
// the token current kicad-cli versions expect.
func normalizeMapFormat(format string) string {
	f := strings.ToLower(format)
	if f == "gerber" {
		return "gerberx2"
	}
	return f
}
