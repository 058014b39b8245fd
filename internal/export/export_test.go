package export

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/kicad-release/internal/config"
	"github.com/jonathan/kicad-release/internal/kicad"
	"github.com/jonathan/kicad-release/internal/project"
)

// writeStub writes an executable kicad-cli stand-in and returns its path.
func writeStub(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs are not available on windows")
	}
	path := filepath.Join(dir, "kicad-cli")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// fullStubBody answers the version probe and creates a plausible output
// for every export subcommand. The -o value is the last argument
// following "-o".
const fullStubBody = `if [ "$1" = "--version" ]; then echo "9.0.2"; exit 0; fi
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
case "$1 $3" in
  "pcb gerbers") touch "$out/board-F_Cu.gbr" "$out/board-Edge_Cuts.gbr" ;;
  "pcb drill")   touch "$out/board-PTH.drl" "$out/board-NPTH.drl" ;;
  "pcb step")    touch "$out" ;;
  "pcb pdf")     touch "$out/stub.pdf" ;;
  "sch pdf")     touch "$out" ;;
  "sch bom")     printf 'Reference,Qty,Value,Footprint,Supplier,Supplier Part Number,DNP\n' > "$out" ;;
esac
exit 0
`

// writeProjectFiles creates an empty project, board, and schematic file
// set named after name in dir.
func writeProjectFiles(t *testing.T, dir, name string) {
	t.Helper()
	for _, ext := range []string{project.ProExt, project.PCBExt, project.SchExt} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+ext), nil, 0644))
	}
}

// newTestEnv builds an Env around a stub tool and a fresh project named
// "demo" with the default configuration.
func newTestEnv(t *testing.T, stubBody string) *Env {
	t.Helper()

	projDir := t.TempDir()
	writeProjectFiles(t, projDir, "demo")
	proj, err := project.Locate(projDir, "")
	require.NoError(t, err)

	stub := writeStub(t, t.TempDir(), stubBody)
	cfg := config.Defaults()

	return &Env{
		Tool:     &kicad.Tool{Path: stub, Version: "9.0.2"},
		Project:  proj,
		Config:   &cfg,
		OutDir:   t.TempDir(),
		FileBase: "demo_v1",
		Runner:   kicad.NewRunner(false),
	}
}
