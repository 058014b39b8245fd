package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerbers_ExportsAndZips(t *testing.T) {
	env := newTestEnv(t, fullStubBody)

	path, err := Gerbers(env)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.OutDir, "demo_v1_gerbers.zip"), path)
	assert.FileExists(t, path)

	log := env.Runner.Log()
	require.Len(t, log, 2)

	gerberCmd := strings.Join(log[0].Cmd, " ")
	assert.Contains(t, gerberCmd, "pcb export gerbers")
	assert.Contains(t, gerberCmd, "--layers")
	assert.Contains(t, gerberCmd, "Edge.Cuts")

	drillCmd := strings.Join(log[1].Cmd, " ")
	assert.Contains(t, drillCmd, "pcb export drill")
	assert.Contains(t, drillCmd, "--excellon-units mm")
	assert.Contains(t, drillCmd, "--map-format gerberx2")
	assert.Contains(t, drillCmd, "--excellon-separate-th")
}

func TestGerbers_NoZipWhenDisabled(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.General.ZipGerbers = false

	path, err := Gerbers(env)
	require.NoError(t, err)
	assert.Empty(t, path)

	// The raw files are still exported.
	assert.FileExists(t, filepath.Join(env.OutDir, GerberSubdir, "board-F_Cu.gbr"))
}

func TestGerbers_DrillDisabledSkipsSecondInvocation(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.Gerbers.Drill.Enabled = false

	_, err := Gerbers(env)
	require.NoError(t, err)
	assert.Len(t, env.Runner.Log(), 1)
}

func TestGerbers_EmptyLayerListOmitsFlag(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.Gerbers.Layers = nil

	_, err := Gerbers(env)
	require.NoError(t, err)
	assert.NotContains(t, env.Runner.Log()[0].Cmd, "--layers")
}

func TestGerbers_MergeNPTHDropsSeparateFlag(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.Gerbers.Drill.MergeNPTH = true

	_, err := Gerbers(env)
	require.NoError(t, err)
	assert.NotContains(t, env.Runner.Log()[1].Cmd, "--excellon-separate-th")
}

func TestGerbers_InchUnitsNormalized(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.Gerbers.Drill.Units = "inch"

	_, err := Gerbers(env)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(env.Runner.Log()[1].Cmd, " "), "--excellon-units in")
}

func TestGerbers_ToolFailure(t *testing.T) {
	env := newTestEnv(t, `echo "plot error" >&2
exit 1
`)

	_, err := Gerbers(env)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, KindGerbers, exportErr.Kind)
	assert.Contains(t, exportErr.Output, "plot error")
}

func TestGerbers_Disabled(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.Gerbers.Enabled = false

	path, err := Gerbers(env)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, env.Runner.Log())
}

func TestNormalizeMapFormat(t *testing.T) {
	assert.Equal(t, "gerberx2", normalizeMapFormat("gerber"))
	assert.Equal(t, "gerberx2", normalizeMapFormat("GERBER"))
	assert.Equal(t, "pdf", normalizeMapFormat("pdf"))
	assert.Equal(t, "svg", normalizeMapFormat("svg"))
}
