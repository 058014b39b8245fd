package kicad

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Tool identifies a validated kicad-cli executable.
type Tool struct {
	Path    string
	Version string // first line of `kicad-cli --version` output
}

// executableName returns the platform-specific kicad-cli binary name.
func executableName() string {
	if runtime.GOOS == "windows" {
		return "kicad-cli.exe"
	}
	return "kicad-cli"
}

// candidatePaths lists the locations to probe, in priority order: the
// explicit override, the process search path, then conventional install
// locations (version-suffixed on Windows, fixed prefixes elsewhere).
func candidatePaths(explicit string) []string {
	var candidates []string
	if explicit != "" {
		candidates = append(candidates, explicit)
	}
	if onPath, err := exec.LookPath(executableName()); err == nil {
		candidates = append(candidates, onPath)
	}
	if runtime.GOOS == "windows" {
		for _, ver := range []string{"9.0", "9", "8.0", "8"} {
			candidates = append(candidates, fmt.Sprintf("C:/Program Files/KiCad/%s/bin/kicad-cli.exe", ver))
		}
	} else {
		candidates = append(candidates,
			"/usr/local/bin/kicad-cli",
			"/opt/homebrew/bin/kicad-cli",
			"/usr/bin/kicad-cli",
		)
	}
	return candidates
}

// Locate finds a working kicad-cli. Each existing candidate is
// validated by running it with --version and requiring exit code zero
// and non-empty output; the first validated candidate wins. As a last
// resort the bare executable name is tried, leaving resolution to the
// OS at spawn time. Probe invocations land in the runner's log like any
// other call.
func Locate(explicit string, r *Runner) (*Tool, error) {
	var tried []string
	for _, candidate := range candidatePaths(explicit) {
		tried = append(tried, candidate)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		res := r.Run([]string{candidate, "--version"}, "")
		if res.Code == 0 && res.Stdout != "" {
			return &Tool{Path: candidate, Version: firstLine(res.Stdout)}, nil
		}
	}

	name := executableName()
	res := r.Run([]string{name, "--version"}, "")
	if res.Code == 0 && res.Stdout != "" {
		return &Tool{Path: name, Version: firstLine(res.Stdout)}, nil
	}

	if len(tried) == 0 {
		tried = []string{name}
	}
	return nil, &NotFoundError{Tried: tried}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
