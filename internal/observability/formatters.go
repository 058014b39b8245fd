// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProject outputs a human-readable summary of the located project files.
func (p *Printer) PrintProject(name, pro, pcb, sch string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	sb.WriteString(fmt.Sprintf("Project:   %s\n", pro))
	sb.WriteString(fmt.Sprintf("Board:     %s\n", pcb))
	sb.WriteString(fmt.Sprintf("Schematic: %s", sch))
	p.printBox("Project", sb.String())
}

// PrintRunSummary outputs the resolved tool identity, the produced
// artifacts sorted by kind, and the invocation count.
func (p *Printer) PrintRunSummary(toolPath, toolVersion string, outputs map[string]string, invocations int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("kicad-cli: %s (%s)\n", toolPath, toolVersion))
	sb.WriteString(fmt.Sprintf("Commands:  %d\n", invocations))

	kinds := make([]string, 0, len(outputs))
	for kind := range outputs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		sb.WriteString(fmt.Sprintf("%-15s %s\n", kind+":", outputs[kind]))
	}
	p.printBox("Run Summary", strings.TrimRight(sb.String(), "\n"))
}
