package kicad

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no kicad-cli candidate validated.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find 'kicad-cli'; tried: %s", strings.Join(e.Tried, ", "))
}
