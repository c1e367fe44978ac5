// Package errors provides structured error types for the dragdrop engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and hosts
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND / UNKNOWN_*: References to items, areas or saves that do not exist
//   - *_STATE: Operations attempted in the wrong engine state
//   - INTERNAL_*: Unexpected internal errors, including structural corruption
//
// Rejected placements are NOT errors. A user dropping an item on a full or
// non-accepting area is an expected outcome, reported through the placement
// outcome rather than through this package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownItem, "no drag item %q", id)
//	if errors.Is(err, errors.ErrCodeUnknownItem) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save %s", name)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration and input validation errors
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"

	// Lookup errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnknownItem Code = "UNKNOWN_ITEM"
	ErrCodeUnknownArea Code = "UNKNOWN_AREA"

	// State errors
	ErrCodeDestroyed   Code = "DESTROYED_STATE"
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// Storage errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
	ErrCodeCorrupt  Code = "INTERNAL_CORRUPT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *ConfigurationError
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ErrCodeInvalidConfig
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce.summary()
	}
	return err.Error()
}

// Problem is a single configuration defect.
type Problem struct {
	Field   string // Dotted path, e.g. "dropAreas[2].maxCapacity"
	Message string
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.Message
	}
	return p.Field + ": " + p.Message
}

// ConfigurationError reports every defect found while validating a
// configuration. Construction fails with this error before any engine state
// is built, so a partially valid engine never exists.
type ConfigurationError struct {
	Problems []Problem
}

// Add records a problem.
func (e *ConfigurationError) Add(field, format string, args ...any) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns e when it holds at least one problem, nil otherwise.
func (e *ConfigurationError) Err() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeInvalidConfig, e.summary())
}

func (e *ConfigurationError) summary() string {
	switch len(e.Problems) {
	case 0:
		return "invalid configuration"
	case 1:
		return e.Problems[0].String()
	}
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%d problems: %s", len(e.Problems), strings.Join(parts, "; "))
}

// Code returns the error code for this error type.
func (e *ConfigurationError) Code() Code {
	return ErrCodeInvalidConfig
}
