// Package errors provides structured error types for flowshop.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad matrix, bad sequence)
//   - UNSUPPORTED_* / TOO_MANY_*: Preconditions of a specific algorithm
//   - LIMIT_EXCEEDED: Search budget exhausted
//   - NO_SOLUTION: Search space exhausted without a complete sequence
//   - INTERNAL_*: Unexpected internal errors
//
// Every validation failure is a [ValidationError], budget exhaustion is a
// [LimitExceededError] and an empty search is a [NoSolutionError]. All of them
// satisfy [Is] with their code.
//
// # Usage
//
//	err := errors.Validation(errors.ErrCodeInvalidMatrix, "row %d has %d entries, want %d", i, got, want)
//	if errors.IsValidation(err) {
//	    // Reject input before doing any work
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidMatrix       Code = "INVALID_MATRIX"
	ErrCodeInvalidSequence     Code = "INVALID_SEQUENCE"
	ErrCodeInvalidAlgorithm    Code = "INVALID_ALGORITHM"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeUnsupportedMachines Code = "UNSUPPORTED_MACHINES"
	ErrCodeTooManyJobs         Code = "TOO_MANY_JOBS"

	// Search outcome errors
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"
	ErrCodeNoSolution    Code = "NO_SOLUTION"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an error carrying a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// coder is implemented by the typed errors of this package.
type coder interface {
	ErrorCode() Code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.ErrorCode()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var le *LimitExceededError
	if errors.As(err, &le) {
		return le.message()
	}
	var ne *NoSolutionError
	if errors.As(err, &ne) {
		return ne.message()
	}
	return err.Error()
}
