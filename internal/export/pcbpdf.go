package export

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const pcbPDFTempDir = "_pcb_pdf_tmp"

// PCBPDF exports the board layers as a multipage PDF. The tool decides
// the output file name inside a temporary directory, so the result is
// located afterwards and moved to the final <base>_PCB.pdf path.
func PCBPDF(env *Env) (string, error) {
	cfg := env.Config.PCBPDF
	if !cfg.Enabled {
		return "", nil
	}

	tmpDir := filepath.Join(env.OutDir, pcbPDFTempDir)
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", &Error{Kind: KindPCBPDF, Message: "failed to reset PCB PDF temp directory", Cause: err}
	}
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", &Error{Kind: KindPCBPDF, Message: "failed to create PCB PDF temp directory", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	argv := []string{env.Tool.Path, "pcb", "export", "pdf", env.Project.PCB, "-o", tmpDir}
	if len(cfg.Layers) > 0 {
		argv = append(argv, "--layers", strings.Join(cfg.Layers, ","))
	}
	// One layer per page in a single document.
	argv = append(argv, "--mode-multipage")
	if cfg.IncludeTitleBlock {
		argv = append(argv, "--include-border-title")
	}
	if cfg.Monochrome {
		argv = append(argv, "--black-and-white")
	}

	if res := env.Runner.Run(argv, ""); res.Code != 0 {
		return "", &Error{Kind: KindPCBPDF, Message: "PCB PDF export failed", Output: res.FailureText()}
	}

	produced, err := findProducedPDF(tmpDir, env.Project.Name)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(env.OutDir, env.FileBase+"_PCB.pdf")
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return "", &Error{Kind: KindPCBPDF, Message: "failed to replace existing PCB PDF", Cause: err}
	}
	if err := os.Rename(produced, outPath); err != nil {
		return "", &Error{Kind: KindPCBPDF, Message: "failed to move PCB PDF into place", Cause: err}
	}
	return outPath, nil
}

// findProducedPDF prefers <projectName>.pdf, then falls back to the
// first PDF in sorted order.
func findProducedPDF(dir, projectName string) (string, error) {
	preferred := filepath.Join(dir, projectName+".pdf")
	if _, err := os.Stat(preferred); err == nil {
		return preferred, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return "", &Error{Kind: KindPCBPDF, Message: "failed to scan PCB PDF temp directory", Cause: err}
	}
	if len(matches) == 0 {
		return "", &Error{Kind: KindPCBPDF, Message: "PCB PDF export produced no PDF file"}
	}
	sort.Strings(matches)
	return matches[0], nil
}
