package errors

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError reports input that an algorithm refuses before doing any
// work: malformed matrices, bad sequences, unsupported machine counts and
// job counts above an algorithm's safety bound.
type ValidationError struct {
	Code    Code
	Message string
}

// Validation creates a ValidationError with the given code and formatted message.
func Validation(code Code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *ValidationError) ErrorCode() Code { return e.Code }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Limit identifies which search budget was exhausted.
type Limit string

const (
	LimitNodes     Limit = "nodes"
	LimitTime      Limit = "time"
	LimitCancelled Limit = "cancelled"
)

// LimitExceededError is returned when a search budget runs out before the
// search space is fully explored or pruned. The search produces no result,
// but the best complete sequence seen so far (if any) is kept here so callers
// can opt into a best-effort answer.
type LimitExceededError struct {
	Limit         Limit
	NodeLimit     int
	TimeLimit     time.Duration
	NodesExplored int
	Elapsed       time.Duration

	// BestSequence is the incumbent at the moment the limit hit; nil when no
	// complete sequence had been evaluated yet.
	BestSequence []int
	BestMakespan int

	Cause error
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCodeLimitExceeded, e.message(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCodeLimitExceeded, e.message())
}

func (e *LimitExceededError) message() string {
	switch e.Limit {
	case LimitNodes:
		return fmt.Sprintf("node limit exceeded: %d > %d", e.NodesExplored, e.NodeLimit)
	case LimitTime:
		return fmt.Sprintf("time limit exceeded: > %s (explored %d nodes)", e.TimeLimit, e.NodesExplored)
	default:
		return fmt.Sprintf("search cancelled after %d nodes", e.NodesExplored)
	}
}

// Unwrap returns the underlying cause (a context error for cancellations).
func (e *LimitExceededError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodeLimitExceeded.
func (e *LimitExceededError) ErrorCode() Code { return ErrCodeLimitExceeded }

// HasIncumbent reports whether a complete sequence was found before the limit.
func (e *LimitExceededError) HasIncumbent() bool { return len(e.BestSequence) > 0 }

// NoSolutionError is returned when a search terminates without ever
// evaluating a complete sequence.
type NoSolutionError struct {
	NodesExplored int
}

// Error implements the error interface.
func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeNoSolution, e.message())
}

func (e *NoSolutionError) message() string {
	return fmt.Sprintf("no complete sequence found (explored %d nodes)", e.NodesExplored)
}

// ErrorCode returns ErrCodeNoSolution.
func (e *NoSolutionError) ErrorCode() Code { return ErrCodeNoSolution }
