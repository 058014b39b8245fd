package export

import (
	"os"
	"path/filepath"
	"strings"
)

// missingModelSignature reports whether tool output looks like the
// missing-3D-model failure rather than a genuine export error. The
// match is case-insensitive: either the dedicated phrase, or a
// file-not-found message referring to a .step model.
func missingModelSignature(text string) bool {
	t := strings.ToLower(text)
	if strings.Contains(t, "could not add 3d model") {
		return true
	}
	return strings.Contains(t, "file not found:") && strings.Contains(t, ".step")
}

// Step exports the 3D model. When the tool fails with the missing-model
// signature and the config allows ignoring missing models, a warning is
// emitted and, if the board-only fallback is enabled, the export is
// retried with --board-only keeping only the silkscreen/soldermask
// includes. The original error surfaces when the fallback is disabled,
// does not apply, or fails too.
func Step(env *Env) (string, error) {
	cfg := env.Config.Step
	if !cfg.Enabled {
		return "", nil
	}

	outPath := filepath.Join(env.OutDir, env.FileBase+".step")

	argv := []string{env.Tool.Path, "pcb", "export", "step", env.Project.PCB, "-o", outPath}
	if cfg.IncludeTracksZones {
		argv = append(argv, "--include-tracks", "--include-zones")
	}
	if cfg.IncludePads {
		argv = append(argv, "--include-pads")
	}
	if cfg.IncludeInnerCopper {
		argv = append(argv, "--include-inner-copper")
	}
	if cfg.IncludeSilkscreen {
		argv = append(argv, "--include-silkscreen")
	}
	if cfg.IncludeSoldermask {
		argv = append(argv, "--include-soldermask")
	}
	if cfg.BoardOnly {
		argv = append(argv, "--board-only")
	}
	if cfg.FuseShapes {
		argv = append(argv, "--fuse-shapes")
	}
	switch strings.ToLower(cfg.UserOrigin) {
	case "":
	case "grid":
		argv = append(argv, "--grid-origin")
	case "drill":
		argv = append(argv, "--drill-origin")
	default:
		// Explicit coordinates like "25.4x25.4mm".
		argv = append(argv, "--user-origin", cfg.UserOrigin)
	}

	res := env.Runner.Run(argv, "")
	if res.Code == 0 {
		return outPath, nil
	}

	failure := res.FailureText()
	if cfg.IgnoreMissingModels && missingModelSignature(failure) {
		env.warnf("Warning: STEP export reported missing 3D models; attempting fallback.")
		if failure != "" {
			env.warnf("%s", failure)
		}
		if cfg.FallbackBoardOnly {
			fallback := []string{env.Tool.Path, "pcb", "export", "step", env.Project.PCB, "-o", outPath, "--board-only"}
			if cfg.IncludeSilkscreen {
				fallback = append(fallback, "--include-silkscreen")
			}
			if cfg.IncludeSoldermask {
				fallback = append(fallback, "--include-soldermask")
			}
			if retry := env.Runner.Run(fallback, ""); retry.Code == 0 {
				if _, err := os.Stat(outPath); err == nil {
					return outPath, nil
				}
			}
		}
	}

	return "", &Error{Kind: KindStep, Message: "STEP export failed", Output: failure}
}
