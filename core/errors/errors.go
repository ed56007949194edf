// Package errors provides standardized error types and helpers for the Chordsmith codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidChord indicates a chord token that does not match the chord grammar
	ErrInvalidChord = errors.New("invalid chord")
	// ErrMalformedSegment indicates a segment block that cannot be decomposed
	ErrMalformedSegment = errors.New("malformed segment")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "song", "library entry")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// InvalidChordError represents a chord token that failed to parse.
// Remainder holds the trailing text that could not be consumed, when known.
type InvalidChordError struct {
	Token     string // The full offending token (e.g., "H7")
	Remainder string // Unconsumed trailing text, if available (e.g., "x" for "C7x")
	Err       error  // Underlying error, if any
}

func (e *InvalidChordError) Error() string {
	if e.Remainder != "" {
		return fmt.Sprintf("invalid chord %q: unmatched trailing %q", e.Token, e.Remainder)
	}
	return fmt.Sprintf("invalid chord %q", e.Token)
}

func (e *InvalidChordError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidChord
}

// SegmentError represents a failure to parse one block of a song document.
// Block is the 1-based index of the block within the document.
type SegmentError struct {
	Block int    // 1-based block index within the document
	Label string // Resolved segment label, if any
	Err   error  // Underlying error
}

func (e *SegmentError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("block %d [%s]: %v", e.Block, e.Label, e.Err)
	}
	return fmt.Sprintf("block %d: %v", e.Block, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewInvalidChord creates an InvalidChordError
func NewInvalidChord(token, remainder string, err error) *InvalidChordError {
	return &InvalidChordError{
		Token:     token,
		Remainder: remainder,
		Err:       err,
	}
}

// NewSegment creates a SegmentError
func NewSegment(block int, label string, err error) *SegmentError {
	return &SegmentError{
		Block: block,
		Label: label,
		Err:   err,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
