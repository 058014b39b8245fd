// Package project locates a KiCad project descriptor and its companion
// board and schematic files.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File extensions of the KiCad project file set.
const (
	ProExt = ".kicad_pro"
	PCBExt = ".kicad_pcb"
	SchExt = ".kicad_sch"
)

// Project describes a located KiCad project: its directory, name, and
// the three files every export needs.
type Project struct {
	Dir  string
	Name string
	Pro  string
	PCB  string
	Sch  string
}

// Locate finds the project in dir. When name is empty, exactly one
// .kicad_pro file must exist in the directory; otherwise
// <name>.kicad_pro is required. The derived board and schematic files
// must both exist.
func Locate(dir, name string) (*Project, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &NotFoundError{Message: fmt.Sprintf("project directory does not exist: %s", dir)}
	}

	var pro string
	if name != "" {
		pro = filepath.Join(dir, name+ProExt)
		if _, err := os.Stat(pro); err != nil {
			return nil, &NotFoundError{Message: fmt.Sprintf("%s not found for project name: %s", ProExt, pro)}
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ProExt))
		if err != nil {
			return nil, &NotFoundError{Message: fmt.Sprintf("could not scan project directory: %v", err)}
		}
		sort.Strings(matches)
		switch len(matches) {
		case 0:
			return nil, &NotFoundError{Message: fmt.Sprintf("no %s found in project directory %s", ProExt, dir)}
		case 1:
			pro = matches[0]
			name = strings.TrimSuffix(filepath.Base(pro), ProExt)
		default:
			candidates := make([]string, len(matches))
			for i, m := range matches {
				candidates[i] = filepath.Base(m)
			}
			return nil, &AmbiguousError{Candidates: candidates}
		}
	}

	pcb := filepath.Join(dir, name+PCBExt)
	if _, err := os.Stat(pcb); err != nil {
		return nil, &FileNotFoundError{Kind: "PCB", Path: pcb}
	}

	sch := filepath.Join(dir, name+SchExt)
	if _, err := os.Stat(sch); err != nil {
		return nil, &FileNotFoundError{Kind: "schematic", Path: sch}
	}

	return &Project{Dir: dir, Name: name, Pro: pro, PCB: pcb, Sch: sch}, nil
}
