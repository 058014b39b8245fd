package export

import "fmt"

// ArtifactKind identifies one exportable artifact family. The values
// double as the keys of the manifest's outputs map.
type ArtifactKind string

const (
	KindGerbers      ArtifactKind = "gerbers_zip"
	KindStep         ArtifactKind = "step"
	KindPCBPDF       ArtifactKind = "pcb_pdf"
	KindSchematicPDF ArtifactKind = "schematics_pdf"
	KindBOMCSV       ArtifactKind = "bom_csv"
)

// Error is an exporter failure. Output carries the tool output captured
// when kicad-cli itself failed; Cause carries filesystem or packaging
// errors around the invocation.
type Error struct {
	Kind    ArtifactKind
	Message string
	Output  string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Output != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Output)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}
