// Package kicad locates the kicad-cli executable and runs it, recording
// every invocation for the run manifest.
package kicad

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// previewLimit caps the stdout/stderr previews stored in the run log.
const previewLimit = 500

// Invocation records one subprocess call for the manifest.
type Invocation struct {
	Cmd           []string `json:"cmd"`
	Cwd           string   `json:"cwd,omitempty"`
	Code          int      `json:"code"`
	StdoutPreview string   `json:"stdout_preview"`
	StderrPreview string   `json:"stderr_preview"`
}

// Result holds the outcome of one subprocess call.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// FailureText returns stderr, falling back to stdout when stderr is empty.
func (r Result) FailureText() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner executes commands synchronously and appends every invocation,
// successful or not, to its log. It is the explicit per-run state that
// ends up in the manifest; nothing here is shared across runs.
type Runner struct {
	Verbose bool
	Echo    io.Writer // command echo target in verbose mode; defaults to os.Stderr

	log []Invocation
}

// NewRunner returns a Runner that echoes commands when verbose is set.
func NewRunner(verbose bool) *Runner {
	return &Runner{Verbose: verbose}
}

// Run executes argv synchronously with dir as the working directory
// (empty means inherit), capturing both output streams. A missing or
// unrunnable binary is reported as exit code 127 with the spawn error
// on stderr rather than as a Go error, so probes can treat every
// outcome uniformly.
func (r *Runner) Run(argv []string, dir string) Result {
	if r.Verbose {
		fmt.Fprintf(r.echo(), "$ %s\n", strings.Join(argv, " "))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Code = 0
	case errors.As(err, &exitErr):
		res.Code = exitErr.ExitCode()
	default:
		res.Code = 127
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	}

	r.log = append(r.log, Invocation{
		Cmd:           argv,
		Cwd:           dir,
		Code:          res.Code,
		StdoutPreview: preview(res.Stdout),
		StderrPreview: preview(res.Stderr),
	})

	return res
}

// Log returns the invocations recorded so far, in execution order.
func (r *Runner) Log() []Invocation {
	return r.log
}

func (r *Runner) echo() io.Writer {
	if r.Echo != nil {
		return r.Echo
	}
	return os.Stderr
}

func preview(s string) string {
	if len(s) > previewLimit {
		return s[:previewLimit]
	}
	return s
}
