package config

import "fmt"

// NotFoundError indicates the user-supplied config file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// InvalidError indicates the config file could not be parsed, has the
// wrong shape, or failed value validation.
type InvalidError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("config error: %s (%s)", e.Message, e.Path)
}

func (e *InvalidError) Unwrap() error {
	return e.Cause
}
