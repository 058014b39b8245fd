package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/kicad-release/internal/config"
	"github.com/jonathan/kicad-release/internal/kicad"
	"github.com/jonathan/kicad-release/internal/project"
)

// Env carries everything an exporter needs for one run: the validated
// tool, the located project, the resolved configuration, the output
// locations, and the shared runner whose log feeds the manifest.
type Env struct {
	Tool     *kicad.Tool
	Project  *project.Project
	Config   *config.Config
	OutDir   string
	FileBase string
	Runner   *kicad.Runner
	Stderr   io.Writer // warnings; defaults to os.Stderr
}

// warnf emits a non-fatal warning to the run's error stream.
func (e *Env) warnf(format string, args ...any) {
	w := e.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}
