// Package errors provides the standardized error taxonomy shared by the calculation engines.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"

	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeQuoteNotFound   ErrorCode = "QUOTE_NOT_FOUND"
	ErrCodeDuplicateQuote  ErrorCode = "DUPLICATE_QUOTE"

	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	ErrCodeDivisionByZero   ErrorCode = "DIVISION_BY_ZERO"
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"

	ErrCodeMalformedFixture ErrorCode = "MALFORMED_FIXTURE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver or library error, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any StandardError carrying the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns the error with an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Sentinels usable with errors.Is.
var (
	ErrProfileNotFound  = &StandardError{Code: ErrCodeProfileNotFound}
	ErrQuoteNotFound    = &StandardError{Code: ErrCodeQuoteNotFound}
	ErrStoreUnavailable = &StandardError{Code: ErrCodeStoreUnavailable}
	ErrDivisionByZero   = &StandardError{Code: ErrCodeDivisionByZero}
	ErrInvalidArgument  = &StandardError{Code: ErrCodeInvalidArgument}
)

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(message string, count int) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("violations: %d", count),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidArgumentError creates a non-retryable argument error.
func NewInvalidArgumentError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidArgument,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable lookup error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   fmt.Sprintf("Profile not found for user ID: %s", userID),
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteNotFoundError creates a non-retryable lookup error.
func NewQuoteNotFoundError(identificationNumber int) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteNotFound,
		Message:   fmt.Sprintf("Quote not found for identification number: %d", identificationNumber),
		Details:   fmt.Sprintf("identificationNumber: %d", identificationNumber),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateQuoteError is returned when an identification number is already taken.
func NewDuplicateQuoteError(identificationNumber int) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateQuote,
		Message:   "Quote already exists",
		Details:   fmt.Sprintf("identificationNumber: %d", identificationNumber),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError wraps a backend failure in a retryable error.
func NewStoreUnavailableError(store, operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   fmt.Sprintf("Store '%s' failed during %s", store, operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDivisionByZeroError is the calculator's only failure mode.
func NewDivisionByZeroError() *StandardError {
	return &StandardError{
		Code:      ErrCodeDivisionByZero,
		Message:   "Cannot divide by zero",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownOperationError creates a non-retryable dispatch error.
func NewUnknownOperationError(op string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownOperation,
		Message:   fmt.Sprintf("Unknown operation: %s", op),
		Details:   fmt.Sprintf("operation: %s", op),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedFixtureError reports an unreadable regression row.
func NewMalformedFixtureError(suite string, line int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedFixture,
		Message:   fmt.Sprintf("Malformed %s fixture at line %d", suite, line),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable:
		return 3
	case ErrCodeDuplicateQuote:
		return 2 // a fresh identification number usually succeeds
	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "DUPLICATE"):
		return "LOOKUP"
	case strings.Contains(codeStr, "STORE"):
		return "STORAGE"
	case strings.Contains(codeStr, "DIVISION") || strings.Contains(codeStr, "OPERATION"):
		return "ARITHMETIC"
	case strings.Contains(codeStr, "FIXTURE"):
		return "REGRESSION"
	default:
		return "OTHER"
	}
}

// CodeOf returns the code of the first StandardError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}
