// Package naming provides filesystem-safe labels and the file naming
// scheme shared by all exporters.
package naming

import (
	"regexp"
	"strings"
)

// fallbackLabel is returned when sanitization strips a label down to nothing.
const fallbackLabel = "artifact"

var (
	disallowedRunes = regexp.MustCompile(`[^-._a-zA-Z0-9]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// Sanitize returns a filesystem-friendly form of label: spaces become
// underscores, any character outside [-._a-zA-Z0-9] becomes an
// underscore, runs of underscores collapse, and leading/trailing
// separators are trimmed. Sanitize is idempotent and never returns an
// empty string.
func Sanitize(label string) string {
	s := strings.ReplaceAll(label, " ", "_")
	s = disallowedRunes.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._-")
	if s == "" {
		return fallbackLabel
	}
	return s
}

// FileBase returns the base name used for every artifact produced by a
// run: <sanitized project name>_<sanitized tag>.
func FileBase(projectName, tag string) string {
	return Sanitize(projectName) + "_" + Sanitize(tag)
}
