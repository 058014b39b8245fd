// Package manifest defines the JSON record written at the end of an
// export run: what was configured, what ran, and what was produced.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/kicad-release/internal/kicad"
)

// FileName is the manifest file name inside the output directory.
const FileName = "manifest.json"

// ProjectInfo captures the located project files.
type ProjectInfo struct {
	Name     string `json:"name"`
	Dir      string `json:"dir"`
	Pro      string `json:"pro"`
	PCB      string `json:"pcb"`
	Sch      string `json:"sch"`
	SafeName string `json:"safe_name"`
}

// HostInfo identifies the machine and runtime that produced the run.
type HostInfo struct {
	OS      string `json:"os"`
	Release string `json:"release"`
	Go      string `json:"go"`
}

// ToolInfo identifies the kicad-cli executable used for the run.
type ToolInfo struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// Manifest is the point-in-time snapshot of one run. It is written once
// at the end and never mutated afterward.
type Manifest struct {
	RunID        string             `json:"run_id"`
	Project      ProjectInfo        `json:"project"`
	Tag          string             `json:"tag"`
	TagSafe      string             `json:"tag_safe"`
	TimestampUTC string             `json:"timestamp_utc"`
	Host         HostInfo           `json:"host"`
	Tools        ToolInfo           `json:"tools"`
	Config       map[string]any     `json:"config"`
	Outputs      map[string]string  `json:"outputs"`
	OutputsDir   string             `json:"outputs_dir"`
	Invoked      []kicad.Invocation `json:"invoked_commands"`
	Error        string             `json:"error,omitempty"`
}

// New returns a manifest stamped with a fresh run ID, host identity,
// and the current UTC time.
func New() *Manifest {
	return &Manifest{
		RunID:        uuid.NewString(),
		TimestampUTC: time.Now().UTC().Format("2006-01-02T15:04:05") + "Z",
		Host: HostInfo{
			OS:      runtime.GOOS,
			Release: runtime.GOARCH,
			Go:      runtime.Version(),
		},
		Outputs: map[string]string{},
	}
}

// Write serializes the manifest as indented JSON into dir and returns
// the written path.
func (m *Manifest) Write(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
