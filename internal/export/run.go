package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/kicad-release/internal/config"
	"github.com/jonathan/kicad-release/internal/kicad"
	"github.com/jonathan/kicad-release/internal/manifest"
	"github.com/jonathan/kicad-release/internal/naming"
	"github.com/jonathan/kicad-release/internal/observability"
	"github.com/jonathan/kicad-release/internal/project"
)

// tagTimeLayout formats the default tag from the current UTC time.
const tagTimeLayout = "20060102-1504"

// Options configures one export run.
type Options struct {
	ProjectDir  string
	ProjectName string // disambiguator when the directory holds several projects
	Tag         string // defaults to the current UTC time
	ConfigPath  string
	OutDir      string // overrides <project-dir>/Exports/<base>
	ForceColor  bool
	ForceMono   bool
	Verbose     bool
	Quiet       bool

	// Only restricts the run to a single artifact kind. Empty means
	// the full pipeline.
	Only ArtifactKind

	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

func (o *Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o *Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Run is the outcome of a completed export run.
type Run struct {
	Project      *project.Project
	Tool         *kicad.Tool
	OutDir       string
	Outputs      map[string]string
	ManifestPath string
}

// step pairs an artifact kind with its exporter.
type step struct {
	kind ArtifactKind
	name string
	fn   func(*Env) (string, error)
}

func pipeline() []step {
	return []step{
		{KindGerbers, "Gerbers and drill", Gerbers},
		{KindStep, "STEP model", Step},
		{KindPCBPDF, "PCB PDF", PCBPDF},
		{KindSchematicPDF, "Schematic PDF", SchematicPDF},
		{KindBOMCSV, "BOM", BOM},
	}
}

// Execute runs the export pipeline: resolve config, locate the project
// and the tool, run each enabled exporter in order, then write the run
// manifest. The manifest is also written when an exporter fails, with
// the failure recorded, so the invocation log survives for diagnosis;
// setup failures before the first export attempt produce no manifest.
func Execute(opts Options) (*Run, error) {
	stdout := opts.stdout()
	stderr := opts.stderr()

	tag := opts.Tag
	if tag == "" {
		tag = time.Now().UTC().Format(tagTimeLayout)
	}

	resolved, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.ForceColor:
		resolved.SetMonochrome(false)
	case opts.ForceMono:
		resolved.SetMonochrome(true)
	}
	cfg := &resolved.Config

	proj, err := project.Locate(opts.ProjectDir, opts.ProjectName)
	if err != nil {
		return nil, err
	}

	fileBase := naming.FileBase(proj.Name, tag)
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(proj.Dir, "Exports", fileBase)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory %s: %w", outDir, err)
	}
	if cfg.General.CleanOutput {
		if err := cleanDir(outDir); err != nil {
			return nil, fmt.Errorf("could not clean output directory %s: %w", outDir, err)
		}
	}

	runner := kicad.NewRunner(opts.Verbose)
	runner.Echo = stderr

	explicit := cfg.General.KicadCLI
	if explicit == "" {
		explicit = os.Getenv("KICAD_CLI")
	}
	tool, err := kicad.Locate(explicit, runner)
	if err != nil {
		return nil, err
	}

	if !opts.Quiet {
		fmt.Fprintf(stdout, "Using kicad-cli: %s (%s)\n", tool.Path, tool.Version)
		fmt.Fprintf(stdout, "Project: %s\n", proj.Name)
		fmt.Fprintf(stdout, "Outputs: %s\n", outDir)
		fmt.Fprintf(stdout, "Tag: %s\n", tag)
	}
	if opts.Verbose {
		observability.NewPrinter(stdout).PrintProject(proj.Name, proj.Pro, proj.PCB, proj.Sch)
	}

	env := &Env{
		Tool:     tool,
		Project:  proj,
		Config:   cfg,
		OutDir:   outDir,
		FileBase: fileBase,
		Runner:   runner,
		Stderr:   stderr,
	}

	steps := pipeline()
	if opts.Only != "" {
		kept := steps[:0]
		for _, s := range steps {
			if s.kind == opts.Only {
				kept = append(kept, s)
			}
		}
		steps = kept
	}

	outputs := map[string]string{}
	var failures []string
	var firstErr error
	for i, s := range steps {
		if !opts.Quiet {
			fmt.Fprintf(stdout, "Step %d/%d: %s\n", i+1, len(steps), s.name)
		}
		path, err := s.fn(env)
		if err != nil {
			fmt.Fprintln(stderr, err)
			failures = append(failures, err.Error())
			if firstErr == nil {
				firstErr = err
			}
			if cfg.General.FailFast {
				break
			}
			continue
		}
		if path != "" {
			outputs[string(s.kind)] = path
		}
	}

	m := manifest.New()
	m.Project = manifest.ProjectInfo{
		Name:     proj.Name,
		Dir:      proj.Dir,
		Pro:      proj.Pro,
		PCB:      proj.PCB,
		Sch:      proj.Sch,
		SafeName: naming.Sanitize(proj.Name),
	}
	m.Tag = tag
	m.TagSafe = naming.Sanitize(tag)
	m.Tools = manifest.ToolInfo{Path: tool.Path, Version: tool.Version}
	m.Config = resolved.Raw
	m.Outputs = outputs
	m.OutputsDir = outDir
	m.Invoked = runner.Log()
	m.Error = strings.Join(failures, "; ")

	manPath, err := m.Write(outDir)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not write manifest: %v\n", err)
	}

	run := &Run{
		Project:      proj,
		Tool:         tool,
		OutDir:       outDir,
		Outputs:      outputs,
		ManifestPath: manPath,
	}
	if firstErr != nil {
		return run, firstErr
	}

	if !opts.Quiet {
		fmt.Fprintln(stdout, "Artifacts:")
		for _, s := range steps {
			if path, ok := outputs[string(s.kind)]; ok {
				fmt.Fprintf(stdout, "- %s: %s\n", s.kind, path)
			}
		}
		fmt.Fprintf(stdout, "Manifest: %s\n", manPath)
	}
	if opts.Verbose {
		observability.NewPrinter(stdout).PrintRunSummary(tool.Path, tool.Version, outputs, len(runner.Log()))
	}

	return run, nil
}

// cleanDir removes every child of dir while keeping dir itself.
func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
