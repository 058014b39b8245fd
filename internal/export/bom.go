package export

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const (
	quantityToken = "${QUANTITY}"
	dnpToken      = "${DNP}"
)

// requiredFields are always appended to the BOM field list so the
// output is usable for ordering even with a minimal configuration.
var requiredFields = []string{"Supplier", "Supplier Part Number"}

// defaultFields is the field list used when the config provides none.
var defaultFields = []string{"Reference", quantityToken, "Value", "Footprint", dnpToken}

// NormalizeFields maps the friendly aliases Qty, Quantity and DNP to
// the tool's substitution tokens, deduplicates while preserving order,
// and appends the required supplier fields when missing.
func NormalizeFields(fields []string) []string {
	if len(fields) == 0 {
		fields = defaultFields
	}
	out := make([]string, 0, len(fields)+len(requiredFields))
	seen := make(map[string]bool)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "qty", "quantity", "${quantity}":
			add(quantityToken)
		case "dnp", "${dnp}":
			add(dnpToken)
		default:
			add(strings.TrimSpace(f))
		}
	}
	for _, f := range requiredFields {
		add(f)
	}
	return out
}

// FieldLabels derives friendly CSV header labels for a normalized
// field list. A user-supplied label list is used verbatim when its
// length matches; otherwise the tokens map to Qty and DNP and every
// other field labels itself.
func FieldLabels(fields, userLabels []string) []string {
	if len(userLabels) > 0 && len(userLabels) == len(fields) {
		return userLabels
	}
	labels := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case quantityToken:
			labels[i] = "Qty"
		case dnpToken:
			labels[i] = "DNP"
		default:
			labels[i] = f
		}
	}
	return labels
}

// BOM exports the bill of materials from the schematic.
func BOM(env *Env) (string, error) {
	cfg := env.Config.BOM
	if !cfg.Enabled {
		return "", nil
	}

	outPath := filepath.Join(env.OutDir, env.FileBase+"_BOM.csv")

	argv := []string{env.Tool.Path, "sch", "export", "bom", env.Project.Sch, "-o", outPath}

	switch strings.ToLower(cfg.OutputFormat) {
	case "", "csv":
		argv = append(argv, "--format-preset", "CSV")
	case "tsv":
		argv = append(argv, "--format-preset", "TSV")
	}

	fields := NormalizeFields(cfg.Fields)
	labels := FieldLabels(fields, cfg.Labels)
	argv = append(argv, "--fields", strings.Join(fields, ","))
	argv = append(argv, "--labels", strings.Join(labels, ","))

	if len(cfg.GroupBy) > 0 {
		argv = append(argv, "--group-by", strings.Join(cfg.GroupBy, ","))
	}

	res := env.Runner.Run(argv, "")
	if res.Code != 0 {
		return "", &Error{Kind: KindBOMCSV, Message: "BOM export failed", Output: res.FailureText()}
	}
	if _, err := os.Stat(outPath); err != nil {
		return "", &Error{Kind: KindBOMCSV, Message: "BOM export produced no output file", Output: res.FailureText(), Cause: err}
	}

	for _, col := range missingSupplierColumns(outPath) {
		env.warnf("Warning: BOM is missing expected column '%s'. Add this field to your symbols or update BOM settings.", col)
	}
	return outPath, nil
}

// missingSupplierColumns sniffs the header row of the exported BOM and
// reports which required supplier columns are absent. Read failures
// report nothing since the export itself succeeded.
func missingSupplierColumns(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil
	}
	header := strings.TrimPrefix(scanner.Text(), "\uFEFF")
	sep := sniffDelimiter(header)

	present := make(map[string]bool)
	for _, col := range strings.Split(header, sep) {
		present[strings.Trim(strings.TrimSpace(col), `"`)] = true
	}

	var missing []string
	for _, col := range requiredFields {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// sniffDelimiter picks the separator that occurs most often in the
// header line, defaulting to a comma.
func sniffDelimiter(header string) string {
	best, bestCount := ",", strings.Count(header, ",")
	for _, sep := range []string{"\t", ";"} {
		if n := strings.Count(header, sep); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}
