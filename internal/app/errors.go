package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrUnsavedChanges refuses to discard a modified document.
	ErrUnsavedChanges = errors.New("unsaved changes (add ! to override)")

	// ErrUnknownCommand is returned for a command line that does not parse.
	ErrUnknownCommand = errors.New("not an editor command")

	// ErrNoPattern is returned when repeating a search before any search.
	ErrNoPattern = errors.New("no previous search pattern")

	// ErrPatternNotFound is returned when a search has no match.
	ErrPatternNotFound = errors.New("pattern not found")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
