// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// History errors
	ErrEmptyHistory        = &Error{Code: "EMPTY_HISTORY", Message: "price history is empty"}
	ErrInsufficientHistory = &Error{Code: "INSUFFICIENT_HISTORY", Message: "at least two price points are required"}
	ErrUnorderedHistory    = &Error{Code: "UNORDERED_HISTORY", Message: "price history timestamps must be strictly increasing"}

	// Data errors
	ErrSymbolNotFound = &Error{Code: "SYMBOL_NOT_FOUND", Message: "symbol not found"}
	ErrInvalidSymbol  = &Error{Code: "INVALID_SYMBOL", Message: "invalid symbol"}
	ErrNoTicker       = &Error{Code: "NO_TICKER", Message: "no $TICKER found in prompt"}

	// Collector errors
	ErrCollectorFailed      = &Error{Code: "COLLECTOR_FAILED", Message: "collector failed"}
	ErrCollectorUnavailable = &Error{Code: "COLLECTOR_UNAVAILABLE", Message: "no collector available"}

	// Request errors
	ErrBadRequest   = &Error{Code: "BAD_REQUEST", Message: "invalid request"}
	ErrRateLimited  = &Error{Code: "RATE_LIMITED", Message: "too many requests"}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// LLM errors
	ErrLLMFailed      = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
	ErrLLMUnavailable = &Error{Code: "LLM_UNAVAILABLE", Message: "no LLM provider configured"}

	// Archive errors
	ErrArchiveFailed   = &Error{Code: "ARCHIVE_FAILED", Message: "archive write failed"}
	ErrArchiveDisabled = &Error{Code: "ARCHIVE_DISABLED", Message: "report archive is not enabled"}
)
