package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFields_MapsAliasesAndAppendsRequired(t *testing.T) {
	got := NormalizeFields([]string{"Qty", "Value", "DNP"})
	assert.Equal(t, []string{"${QUANTITY}", "Value", "${DNP}", "Supplier", "Supplier Part Number"}, got)
}

func TestNormalizeFields_EmptyUsesDefaults(t *testing.T) {
	got := NormalizeFields(nil)
	assert.Equal(t, []string{"Reference", "${QUANTITY}", "Value", "Footprint", "${DNP}", "Supplier", "Supplier Part Number"}, got)
}

func TestNormalizeFields_DeduplicatesPreservingFirst(t *testing.T) {
	got := NormalizeFields([]string{"Qty", "Quantity", "${quantity}", "Value", "Supplier"})
	assert.Equal(t, []string{"${QUANTITY}", "Value", "Supplier", "Supplier Part Number"}, got)
}

func TestFieldLabels_DerivedFromTokens(t *testing.T) {
	fields := []string{"Reference", "${QUANTITY}", "Value", "${DNP}"}
	assert.Equal(t, []string{"Reference", "Qty", "Value", "DNP"}, FieldLabels(fields, nil))
}

func TestFieldLabels_UserListUsedOnExactLengthMatch(t *testing.T) {
	fields := []string{"${QUANTITY}", "Value"}

	assert.Equal(t, []string{"Count", "Part"}, FieldLabels(fields, []string{"Count", "Part"}))

	// Length mismatch falls back to the derived labels.
	assert.Equal(t, []string{"Qty", "Value"}, FieldLabels(fields, []string{"Count"}))
}

func TestBOM_Disabled(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	env.Config.BOM.Enabled = false

	path, err := BOM(env)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, env.Runner.Log())
}

func TestBOM_Success(t *testing.T) {
	env := newTestEnv(t, fullStubBody)
	var warnings bytes.Buffer
	env.Stderr = &warnings

	path, err := BOM(env)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "demo_v1_BOM.csv"))
	assert.Empty(t, warnings.String())

	log := env.Runner.Log()
	require.Len(t, log, 1)
	cmd := strings.Join(log[0].Cmd, " ")
	assert.Contains(t, cmd, "--format-preset CSV")
	assert.Contains(t, cmd, "Supplier Part Number")
}

func TestBOM_WarnsOnMissingSupplierColumns(t *testing.T) {
	env := newTestEnv(t, `if [ "$1" = "--version" ]; then echo "9.0.2"; exit 0; fi
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
printf 'Reference,Qty,Value\n' > "$out"
exit 0
`)
	var warnings bytes.Buffer
	env.Stderr = &warnings

	path, err := BOM(env)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	assert.Contains(t, warnings.String(), "'Supplier'")
	assert.Contains(t, warnings.String(), "'Supplier Part Number'")
}

func TestBOM_ToolFailure(t *testing.T) {
	env := newTestEnv(t, `echo "bom error" >&2
exit 1
`)

	_, err := BOM(env)
	require.Error(t, err)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, KindBOMCSV, exportErr.Kind)
	assert.Contains(t, exportErr.Output, "bom error")
}

func TestBOM_MissingOutputFileIsError(t *testing.T) {
	env := newTestEnv(t, "exit 0\n")

	_, err := BOM(env)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, KindBOMCSV, exportErr.Kind)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ",", sniffDelimiter("a,b,c"))
	assert.Equal(t, "\t", sniffDelimiter("a\tb\tc"))
	assert.Equal(t, ";", sniffDelimiter("a;b;c"))
	assert.Equal(t, ",", sniffDelimiter("single"))
}
