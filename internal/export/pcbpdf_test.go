package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTempDirGone(t *testing.T, outDir string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(outDir, pcbPDFTempDir))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed")
}

func TestPCBPDF_MovesResultAndRemovesTempDir(t *testing.T) {
	env := newTestEnv(t, fullStubBody)

	path, err := PCBPDF(env)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.OutDir, "demo_v1_PCB.pdf"), path)
	assert.FileExists(t, path)
	assertTempDirGone(t, env.OutDir)

	cmd := env.Runner.Log()[0].Cmd
	assert.Contains(t, cmd, "--mode-multipage")
	assert.Contains(t, cmd, "--include-border-title")
}

func TestPCBPDF_PrefersProjectNamedPDF(t *testing.T) {
	env := newTestEnv(t, `if [ "$1" = "--version" ]; then echo "9.0.2"; exit 0; fi
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
echo "wrong" > "$out/aaa.pdf"
echo "right" > "$out/demo.pdf"
exit 0
`)

	path, err := PCBPDF(env)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "right\n", string(data))
}

func TestPCBPDF_ToolFailureRemovesTempDir(t *testing.T) {
	env := newTestEnv(t, `echo "plot failed" >&2
exit 1
`)

	_, err := PCBPDF(env)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, KindPCBPDF, exportErr.Kind)
	assert.Contains(t, exportErr.Output, "plot failed")
	assertTempDirGone(t, env.OutDir)
}

func TestPCBPDF_NoPDFProducedRemovesTempDir(t *testing.T) {
	env := newTestEnv(t, "exit 0\n")

	_, err := PCBPDF(env)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, KindPCBPDF, exportErr.Kind)
	assertTempDirGone(t, env.OutDir)
}

func TestPCBPDF_OverwritesExistingOutput(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	target := filepath.Join(env.OutDir, "demo_v1_PCB.pdf")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

	path, err := PCBPDF(env)
	require.NoError(t, err)
	assert.Equal(t, target, path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestPCBPDF_MonochromeFlag(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.PCBPDF.Monochrome = true

	_, err := PCBPDF(env)
	require.NoError(t, err)
	assert.Contains(t, env.Runner.Log()[0].Cmd, "--black-and-white")
}

func TestPCBPDF_Disabled(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.PCBPDF.Enabled = false

	path, err := PCBPDF(env)
	require.NoError(t, err)
	assert.Empty(t, path)
}
