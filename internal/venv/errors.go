package venv

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotManaged is returned by Destroy when the target directory carries
	// no marker file and therefore was not created by this package.
	ErrNotManaged = errors.New("directory is not a managed environment")

	// ErrInvalidHandle is returned when an operation is invoked on a nil or
	// zero-value Environment. Programmer error, fails fast.
	ErrInvalidHandle = errors.New("invalid environment handle")
)

// CreationError reports that the external environment-creation tool exited
// non-zero. Output carries the tool's captured error text.
type CreationError struct {
	Tool   string
	Dir    string
	Output string
}

func (e *CreationError) Error() string {
	msg := fmt.Sprintf("%s failed to create environment at %s", e.Tool, e.Dir)
	if e.Output != "" {
		msg += ": " + strings.TrimSpace(e.Output)
	}
	return msg
}

// MalformedOutputError reports package-manager output that could not be
// decoded as the expected JSON array of {name, version} objects.
type MalformedOutputError struct {
	Output string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed package list output: %v (output: %s)", e.Err, snippet(e.Output))
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 120 {
		return s
	}
	cut := 120
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
