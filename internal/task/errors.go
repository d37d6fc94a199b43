package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyDescription is returned by Add when the description is blank.
	ErrEmptyDescription = errors.New("task description cannot be empty")
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("task not found")
	// ErrNoTasks is returned by View when the store is empty.
	ErrNoTasks = errors.New("no tasks")
	// ErrInvalidNumericInput is returned by ParseID for non-integer input.
	ErrInvalidNumericInput = errors.New("invalid numeric input")
)

// NotFoundError reports a lookup for an ID that is not in the store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Violation is a single schema violation in the tasks file.
type Violation struct {
	Path    string // e.g. "[2].priority"; empty for the document root
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ParseError reports a tasks file that could not be decoded or did not match
// the expected structure. It is recoverable: the store is left empty.
type ParseError struct {
	File       string
	Violations []Violation // set when the JSON decoded but failed validation
	Err        error
}

func (e *ParseError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("parse tasks file %s: %v", e.File, e.Err)
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("parse tasks file %s: %s", e.File, strings.Join(parts, "; "))
}

// Unwrap returns the underlying decode or validation error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseID converts user input to a task ID. Surrounding whitespace is
// ignored; anything that is not an integer wraps ErrInvalidNumericInput.
func ParseID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumericInput, input)
	}
	return id, nil
}
