// Package errors provides structured error types for the jsoncanvas tools.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three groups:
//   - Canvas codes mirror the decode and model failures of pkg/canvas
//     (EMPTY_IDENTIFIER, DUPLICATE_NODE_ID, MISSING_FIELD, ...)
//   - Resource codes: NOT_FOUND, CANVAS_NOT_FOUND, FILE_NOT_FOUND
//   - Input and internal codes: INVALID_INPUT, INVALID_NAME, INVALID_CONFIG, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidName, "invalid canvas name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidName) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "failed to store %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Canvas model and codec errors
	ErrCodeEmptyIdentifier  Code = "EMPTY_IDENTIFIER"
	ErrCodeDuplicateNodeID  Code = "DUPLICATE_NODE_ID"
	ErrCodeDuplicateEdgeID  Code = "DUPLICATE_EDGE_ID"
	ErrCodeDanglingEndpoint Code = "DANGLING_EDGE_ENDPOINT"
	ErrCodeMissingField     Code = "MISSING_FIELD"
	ErrCodeUnknownField     Code = "UNKNOWN_FIELD"
	ErrCodeUnknownEnumValue Code = "UNRECOGNIZED_ENUM_VALUE"
	ErrCodeMalformedColor   Code = "MALFORMED_COLOR"
	ErrCodeMalformedURL     Code = "MALFORMED_URL"
	ErrCodeInvalidValue     Code = "INVALID_VALUE"
	ErrCodeZeroSize         Code = "ZERO_SIZE"
	ErrCodeParse            Code = "PARSE_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeCanvasNotFound Code = "CANVAS_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error in the chain is compared.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
