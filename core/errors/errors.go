// Package errors provides the error classes shared by the CanonBridge packages.
//
// Ordinary absence (a verse, chapter, or cross-reference that does not exist)
// is never an error: lookups report it with a boolean. The types here cover
// the remaining classes: malformed input, data-integrity faults, and store
// faults. Each type unwraps to a sentinel so callers can branch with Is.
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
	// ErrIntegrity indicates the stored corpus violates an invariant the core depends on
	ErrIntegrity = errors.New("data integrity fault")
	// ErrStore indicates the backing store failed (connectivity, corruption, driver)
	ErrStore = errors.New("store fault")
	// ErrUnsupported indicates an unsupported operation or backend
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context.
// It is used at the outer surfaces (CLI, API) where absence has to be
// reported as a failure of the whole request.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "book", "chapter", "corpus")
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

// ReferenceError reports a reference string that matches neither grammar.
type ReferenceError struct {
	Input    string // Raw reference as typed
	Expected string // Human description of the expected shape
}

func (e *ReferenceError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("invalid reference %q: expected %s", e.Input, e.Expected)
	}
	return fmt.Sprintf("invalid reference %q", e.Input)
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidInput
}

// IntegrityError reports stored data that breaks an invariant: an ambiguous
// match, a second cross-reference edge, a missing canonical corpus.
type IntegrityError struct {
	Entity  string // Entity involved (e.g., "verse", "corpus", "cross_reference")
	Key     string // Lookup key that exposed the fault
	Message string // What is wrong
}

func (e *IntegrityError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("data integrity fault in %s (%s): %s", e.Entity, e.Key, e.Message)
	}
	return fmt.Sprintf("data integrity fault in %s: %s", e.Entity, e.Message)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// StoreError wraps a backend failure with the operation that hit it.
type StoreError struct {
	Operation string // Store operation (e.g., "resolve_verse")
	Err       error  // Underlying driver error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Operation, e.Err)
}

// Unwrap exposes both the sentinel and the driver error.
func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
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

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
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

// NewReference creates a ReferenceError
func NewReference(input, expected string) *ReferenceError {
	return &ReferenceError{
		Input:    input,
		Expected: expected,
	}
}

// NewIntegrity creates an IntegrityError
func NewIntegrity(entity, key, message string) *IntegrityError {
	return &IntegrityError{
		Entity:  entity,
		Key:     key,
		Message: message,
	}
}

// NewStore creates a StoreError. If err is nil, returns nil.
func NewStore(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{
		Operation: operation,
		Err:       err,
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

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
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

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsFault reports whether err is a store or integrity fault, the two classes
// that must abort a request instead of being phrased as "not found".
func IsFault(err error) bool {
	return errors.Is(err, ErrStore) || errors.Is(err, ErrIntegrity)
}
