package project

import (
	"fmt"
	"strings"
)

// NotFoundError indicates the project directory or descriptor is missing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AmbiguousError indicates more than one project descriptor was found
// and the caller must disambiguate with an explicit project name.
type AmbiguousError struct {
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple %s files found: %s; use --project-name to disambiguate",
		ProExt, strings.Join(e.Candidates, ", "))
}

// FileNotFoundError indicates a required companion file (board or
// schematic) derived from the project name does not exist.
type FileNotFoundError struct {
	Kind string
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}
