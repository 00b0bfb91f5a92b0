package params

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingParams matches any MissingParamsError via errors.Is.
var ErrMissingParams = errors.New("missing required parameters")

// ErrNoInput is returned by a prompter whose input ended before a line was read.
var ErrNoInput = errors.New("no input available")

// MissingParamsError lists every required parameter a task could not resolve.
type MissingParamsError struct {
	Task  string
	Names []string
}

// Messages returns one "Missing argument" line per parameter.
func (e *MissingParamsError) Messages() []string {
	msgs := make([]string, len(e.Names))
	for i, name := range e.Names {
		msgs[i] = fmt.Sprintf("Missing argument '%s'", name)
	}
	return msgs
}

func (e *MissingParamsError) Error() string {
	return strings.Join(e.Messages(), "\n")
}

func (e *MissingParamsError) Is(target error) bool {
	return target == ErrMissingParams
}

// SpecError reports a malformed parameter declaration.
type SpecError struct {
	Task     string
	Problems []string
}

func (e *SpecError) Error() string {
	prefix := "invalid parameters"
	if e.Task != "" {
		prefix = fmt.Sprintf("invalid parameters for task %q", e.Task)
	}
	return fmt.Sprintf("%s: %s", prefix, strings.Join(e.Problems, "; "))
}
